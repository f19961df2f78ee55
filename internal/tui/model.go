package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/register/internal/form"
)

// itemKind distinguishes the focusable rows of the form.
type itemKind int

const (
	kindText itemKind = iota
	kindSelect
	kindCancel
	kindSubmit
)

// item is one focusable row. Text rows own a textinput; select rows read
// their value from the session and cycle through choices.
type item struct {
	kind  itemKind
	field form.Field
	label string
	input textinput.Model
}

// Model is the Bubble Tea model for the registration form.
type Model struct {
	session  *form.Session
	creator  form.Creator
	items    []item
	focus    int
	keys     formKeys
	help     help.Model
	width    int
	now      func() time.Time
	ctx      context.Context
	cancel   context.CancelFunc
	inFlight int
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithClock sets the clock used to build the year choices.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// WithContext sets the parent context for create-user requests.
// Quitting the form cancels it.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) { m.ctx = ctx }
}

// NewModel creates a form Model over session, submitting through c.
func NewModel(session *form.Session, c form.Creator, opts ...ModelOption) Model {
	m := Model{
		session: session,
		creator: c,
		keys:    FormKeyMap(),
		help:    help.New(),
		now:     time.Now,
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.ctx, m.cancel = context.WithCancel(m.ctx)

	m.items = []item{
		newTextItem(form.FieldFullName, "Full Name", false),
		newTextItem(form.FieldContactNumber, "Contact Number", false),
		{kind: kindSelect, field: form.FieldDay, label: "Day"},
		{kind: kindSelect, field: form.FieldMonth, label: "Month"},
		{kind: kindSelect, field: form.FieldYear, label: "Year"},
		newTextItem(form.FieldEmail, "Email", false),
		newTextItem(form.FieldPassword, "Password", true),
		newTextItem(form.FieldConfirmPassword, "Confirm Password", true),
		{kind: kindCancel, label: "Cancel"},
		{kind: kindSubmit, label: "Submit"},
	}
	m.syncInputs()
	m.items[0].input.Focus()
	return m
}

func newTextItem(f form.Field, label string, masked bool) item {
	ti := textinput.New()
	ti.Placeholder = label
	ti.Prompt = ""
	ti.Width = 40
	if masked {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return item{kind: kindText, field: f, label: label, input: ti}
}

// Init starts the cursor blink of the focused input.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case SubmitResultMsg:
		if m.inFlight > 0 {
			m.inFlight--
		}
		m.session.Complete(msg.Result)
		if msg.Result.Kind == form.Success {
			m.syncInputs()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

// handleKey routes navigation, selection and submit keys; anything else goes
// to the focused text input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := m.items[m.focus]

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Enter):
		switch cur.kind {
		case kindSubmit:
			return m.submit()
		case kindCancel:
			return m.quit()
		default:
			return m.moveFocus(1)
		}
	case cur.kind == kindSelect && key.Matches(msg, m.keys.Left):
		m.cycle(cur.field, -1)
		return m, nil
	case cur.kind == kindSelect && key.Matches(msg, m.keys.Right):
		m.cycle(cur.field, 1)
		return m, nil
	case cur.kind == kindSubmit && key.Matches(msg, m.keys.Left):
		return m.moveFocus(-1)
	case cur.kind == kindCancel && key.Matches(msg, m.keys.Right):
		return m.moveFocus(1)
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput feeds msg to the focused text input and records any
// value change in the session.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	it := &m.items[m.focus]
	if it.kind != kindText {
		return m, nil
	}
	before := it.input.Value()
	var cmd tea.Cmd
	it.input, cmd = it.input.Update(msg)
	if after := it.input.Value(); after != before {
		m.session.Change(it.field, after)
	}
	return m, cmd
}

// submit starts a submission. A password mismatch is resolved immediately;
// otherwise the request is issued from a command so the merged date of birth
// is rendered before it goes out. Overlapping submissions are not prevented.
func (m Model) submit() (tea.Model, tea.Cmd) {
	body, res := m.session.Begin()
	if res != nil {
		return m, nil
	}
	m.inFlight++
	return m, submitCmd(m.ctx, m.creator, body)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	n := len(m.items)
	if it := &m.items[m.focus]; it.kind == kindText {
		it.input.Blur()
	}
	m.focus = ((m.focus+delta)%n + n) % n
	if it := &m.items[m.focus]; it.kind == kindText {
		return m, it.input.Focus()
	}
	return m, nil
}

// cycle moves the selection of f by delta, wrapping at both ends. An empty
// selection steps to the first (delta > 0) or last (delta < 0) choice.
func (m Model) cycle(f form.Field, delta int) {
	choices := m.choices(f)
	if len(choices) == 0 {
		return
	}
	idx := indexOf(choices, m.session.State().Get(f))
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(choices) - 1
	default:
		idx = ((idx+delta)%len(choices) + len(choices)) % len(choices)
	}
	m.session.Change(f, choices[idx])
}

// choices returns the selectable values for a select field, rebuilt on each
// call so the year list follows the clock.
func (m Model) choices(f form.Field) []string {
	switch f {
	case form.FieldDay:
		return itoaAll(form.Days())
	case form.FieldMonth:
		months := form.Months()
		out := make([]string, len(months))
		for i, mo := range months {
			out[i] = mo.Value
		}
		return out
	case form.FieldYear:
		return itoaAll(form.Years(m.now()))
	default:
		return nil
	}
}

// syncInputs copies session values into the text inputs.
func (m Model) syncInputs() {
	st := m.session.State()
	for i := range m.items {
		if m.items[i].kind == kindText {
			m.items[i].input.SetValue(st.Get(m.items[i].field))
		}
	}
}

// Session returns the session backing the form.
func (m Model) Session() *form.Session { return m.session }

// InFlight reports how many submissions are awaiting a reply.
func (m Model) InFlight() int { return m.inFlight }

// View renders the form.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Create User Account"))
	b.WriteString("\n")

	if a := m.session.Alert(); a != nil {
		style := alertErrorStyle
		if a.Severity == form.SeveritySuccess {
			style = alertSuccessStyle
		}
		b.WriteString(style.Render(a.Message))
		b.WriteString("\n")
	}

	for i := range m.items {
		switch m.items[i].field {
		case form.FieldDay:
			b.WriteString(labelStyle.Render("Birthdate"))
			b.WriteString("\n")
			b.WriteString(m.viewBirthdate())
			b.WriteString("\n\n")
			continue
		case form.FieldMonth, form.FieldYear:
			continue
		}
		if m.items[i].kind == kindCancel {
			break
		}
		b.WriteString(m.viewText(i))
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewButtons())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewText(i int) string {
	it := m.items[i]
	label := labelStyle.Render(it.label)
	if it.field == form.FieldEmail {
		label = labelStyle.Render("Email Address")
	}
	line := "  " + it.input.View()
	if i == m.focus {
		line = focusedStyle.Render(CursorMarker) + it.input.View()
	}
	s := label + "\n" + line
	if it.field == form.FieldEmail && m.session.EmailInvalid() {
		s += "\n  " + helperStyle.Render(EmailHelperText)
	}
	return s
}

func (m Model) viewBirthdate() string {
	st := m.session.State()
	parts := make([]string, 0, 3)
	for i, it := range m.items {
		if it.kind != kindSelect {
			continue
		}
		val := st.Get(it.field)
		if val == "" {
			val = dimStyle.Render(it.label)
		}
		cell := it.label + ": ‹ " + val + " ›"
		if i == m.focus {
			cell = focusedStyle.Render(CursorMarker + cell)
		} else {
			cell = "  " + cell
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, "  ")
}

func (m Model) viewButtons() string {
	var buttons []string
	for i, it := range m.items {
		if it.kind != kindCancel && it.kind != kindSubmit {
			continue
		}
		style := buttonStyle
		if i == m.focus {
			style = focusedButtonStyle
		}
		buttons = append(buttons, style.Render(it.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func itoaAll(ns []int) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = strconv.Itoa(n)
	}
	return out
}

func indexOf(vals []string, v string) int {
	for i, s := range vals {
		if s == v {
			return i
		}
	}
	return -1
}
