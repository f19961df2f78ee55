package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/register"
	"github.com/smileynet/register/internal/config"
	"github.com/smileynet/register/internal/form"
	"github.com/smileynet/register/internal/logging"
	"github.com/smileynet/register/internal/tui"
	"github.com/smileynet/register/internal/userservice"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for register.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Config  string           `help:"Extra config file layered over user and project config." placeholder:"FILE"`
	Form    FormCmd          `cmd:"" default:"1" help:"Open the interactive registration form."`
	Submit  SubmitCmd        `cmd:"" help:"Submit a registration without the interactive form."`
	Options OptionsCmd       `cmd:"" help:"Print the choices offered by the birthdate selectors."`
	Init    InitCmd          `cmd:"" help:"Write a starter config file."`
}

// loadConfig loads layered config from user, project and flag paths with env overrides.
func loadConfig(extra string) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/register/config.yaml"),
		".register/config.yaml",
		extra,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newCreator builds the user service client behind the form.Creator port.
func newCreator(cfg *config.Config, log *slog.Logger) form.Creator {
	client := userservice.NewClient(cfg.Endpoint.URL,
		userservice.WithTimeout(cfg.Endpoint.Timeout),
		userservice.WithLogger(log),
	)
	return &serviceCreator{client: client}
}

// serviceCreator adapts *userservice.Client to form.Creator.
type serviceCreator struct {
	client *userservice.Client
}

func (s *serviceCreator) Create(ctx context.Context, body form.State) (form.Reply, error) {
	resp, err := s.client.Create(ctx, body)
	if err != nil {
		return form.Reply{}, err
	}
	return form.Reply{Title: resp.Title}, nil
}

// --- Form command ---

// FormCmd opens the interactive registration form.
type FormCmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the form TUI.
func (f *FormCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}

	// The terminal belongs to the form; logs go to a file.
	logCfg := cfg.Log
	if logCfg.File == "" {
		logCfg.File = filepath.Join(os.TempDir(), "register.log")
	}
	w, closeLog, err := logging.Open(logCfg, io.Discard)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	defer func() { _ = closeLog() }()
	log := logging.New(logCfg, w)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := form.NewSession(form.WithLogger(log))
	m := tui.NewModel(session, newCreator(cfg, log), tui.WithContext(ctx))
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	return f.run(tui.IsTerminal(os.Stdout), prog)
}

// run executes the tea program, enabling testable wiring.
func (f *FormCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("form: requires a terminal (TTY); use submit for non-interactive use")
	}
	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// --- Submit command ---

// SubmitCmd drives one submission from flags.
type SubmitCmd struct {
	FullName        string `help:"Full name."`
	ContactNumber   string `help:"Contact number."`
	Email           string `help:"Email address."`
	Password        string `help:"Password."`
	ConfirmPassword string `help:"Password confirmation."`
	Day             string `help:"Birth day (1-31)."`
	Month           string `help:"Birth month (January-December)."`
	Year            string `help:"Birth year (current year back 100 years)."`
}

// OutcomeError reports a submission that did not create an account.
type OutcomeError struct {
	Result form.Result
	Alert  form.Alert
}

func (e *OutcomeError) Error() string {
	return fmt.Sprintf("submit: %s: %s", e.Result.Kind, e.Alert.Message)
}

func (e *OutcomeError) Unwrap() error {
	return e.Result.Err
}

// Run executes the submit command.
func (s *SubmitCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	w, closeLog, err := logging.Open(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	defer func() { _ = closeLog() }()
	log := logging.New(cfg.Log, w)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return s.run(ctx, os.Stdout, newCreator(cfg, log), log, time.Now())
}

// run fills a session from flags and submits it, enabling testable wiring.
func (s *SubmitCmd) run(ctx context.Context, w io.Writer, c form.Creator, log *slog.Logger, now time.Time) error {
	if err := s.checkSelections(now); err != nil {
		return err
	}

	session := form.NewSession(form.WithLogger(log))
	for f, v := range map[form.Field]string{
		form.FieldFullName:        s.FullName,
		form.FieldContactNumber:   s.ContactNumber,
		form.FieldPassword:        s.Password,
		form.FieldConfirmPassword: s.ConfirmPassword,
		form.FieldDay:             s.Day,
		form.FieldMonth:           s.Month,
		form.FieldYear:            s.Year,
	} {
		session.Change(f, v)
	}
	// Email last so the format warning reflects it.
	session.Change(form.FieldEmail, s.Email)
	if session.EmailInvalid() {
		_, _ = fmt.Fprintf(w, "warning: %s\n", tui.EmailHelperText)
	}

	res := session.Submit(ctx, c)
	alert := session.Alert()
	if alert != nil {
		_, _ = fmt.Fprintf(w, "[%s] %s\n", alert.Severity, alert.Message)
	}
	if res.Kind != form.Success {
		return &OutcomeError{Result: res, Alert: *alert}
	}
	return nil
}

// checkSelections rejects birthdate values the selectors would not offer.
func (s *SubmitCmd) checkSelections(now time.Time) error {
	if s.Day != "" && !containsInt(form.Days(), s.Day) {
		return fmt.Errorf("submit: day must be 1-31, got %q", s.Day)
	}
	if s.Month != "" {
		found := false
		for _, m := range form.Months() {
			if m.Value == s.Month {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("submit: month must be an English month name, got %q", s.Month)
		}
	}
	if s.Year != "" && !containsInt(form.Years(now), s.Year) {
		return fmt.Errorf("submit: year must be between %d and %d, got %q", now.Year()-100, now.Year(), s.Year)
	}
	return nil
}

func containsInt(vals []int, s string) bool {
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return false
	}
	for _, v := range vals {
		if v == n {
			return true
		}
	}
	return false
}

// --- Options command ---

// OptionsCmd prints a selector's choices, one per line.
type OptionsCmd struct {
	Kind string `arg:"" enum:"days,months,years" help:"Which choices to print (days, months, years)."`
}

// Run executes the options command.
func (o *OptionsCmd) Run() error {
	return o.run(os.Stdout, time.Now())
}

func (o *OptionsCmd) run(w io.Writer, now time.Time) error {
	switch o.Kind {
	case "days":
		for _, d := range form.Days() {
			_, _ = fmt.Fprintln(w, d)
		}
	case "months":
		for _, m := range form.Months() {
			_, _ = fmt.Fprintln(w, m.Label)
		}
	case "years":
		for _, y := range form.Years(now) {
			_, _ = fmt.Fprintln(w, y)
		}
	default:
		return fmt.Errorf("options: unknown kind %q", o.Kind)
	}
	return nil
}

// --- Init command ---

// InitCmd writes the embedded starter config.
type InitCmd struct {
	Path  string `help:"Where to write the config." default:".register/config.yaml" placeholder:"FILE"`
	Force bool   `help:"Overwrite an existing file."`
}

// Run executes the init command.
func (i *InitCmd) Run() error {
	return i.run(os.Stdout)
}

func (i *InitCmd) run(w io.Writer) error {
	if err := config.Init(i.Path, register.ConfigTemplate(), i.Force); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	_, _ = fmt.Fprintf(w, "wrote %s\n", i.Path)
	return nil
}

// Exit codes.
const (
	exitSuccess  = 0
	exitRejected = 1
	exitSetup    = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var oe *OutcomeError
	if errors.As(err, &oe) {
		return exitRejected
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("register"),
		kong.Description("Create a user account from the terminal."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
