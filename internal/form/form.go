// Package form holds the registration form state machine: field edits,
// email and password validation, and the submit cycle that turns a
// create-user reply into the alert shown to the user.
package form

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"regexp"
	"strconv"
)

// Field identifies an editable entry in State.
type Field string

const (
	FieldFullName        Field = "full_name"
	FieldEmail           Field = "email"
	FieldContactNumber   Field = "contact_number"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirm_password"
	FieldDay             Field = "day"
	FieldMonth           Field = "month"
	FieldYear            Field = "year"
	FieldError           Field = "error"
	FieldSuccess         Field = "success"
)

// Fields lists every editable field in display order.
var Fields = []Field{
	FieldFullName,
	FieldContactNumber,
	FieldDay,
	FieldMonth,
	FieldYear,
	FieldEmail,
	FieldPassword,
	FieldConfirmPassword,
	FieldError,
	FieldSuccess,
}

// State is the whole form record. It is also the create-user request body,
// so the JSON names are part of the wire contract.
type State struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	ContactNumber   string `json:"contact_number"`
	Password        string `json:"password"`
	Day             string `json:"day"`
	DateOfBirth     string `json:"date_of_birth"`
	Month           string `json:"month"`
	Year            string `json:"year"`
	ConfirmPassword string `json:"confirm_password"`
	Error           string `json:"error"`
	Success         string `json:"success"`
}

// MarshalJSON encodes the request body. A selected day or year goes out as a
// JSON number; an unselected one stays "".
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FullName        string `json:"full_name"`
		Email           string `json:"email"`
		ContactNumber   string `json:"contact_number"`
		Password        string `json:"password"`
		Day             any    `json:"day"`
		DateOfBirth     string `json:"date_of_birth"`
		Month           string `json:"month"`
		Year            any    `json:"year"`
		ConfirmPassword string `json:"confirm_password"`
		Error           string `json:"error"`
		Success         string `json:"success"`
	}{
		FullName:        s.FullName,
		Email:           s.Email,
		ContactNumber:   s.ContactNumber,
		Password:        s.Password,
		Day:             selection(s.Day),
		DateOfBirth:     s.DateOfBirth,
		Month:           s.Month,
		Year:            selection(s.Year),
		ConfirmPassword: s.ConfirmPassword,
		Error:           s.Error,
		Success:         s.Success,
	})
}

// selection returns v as an int when it is a canonical integer.
func selection(v string) any {
	n, err := strconv.Atoi(v)
	if err != nil || strconv.Itoa(n) != v {
		return v
	}
	return n
}

// Get returns the value held for f, or "" for an unknown field.
func (s State) Get(f Field) string {
	if p := s.ptr(f); p != nil {
		return *p
	}
	return ""
}

func (s *State) ptr(f Field) *string {
	switch f {
	case FieldFullName:
		return &s.FullName
	case FieldEmail:
		return &s.Email
	case FieldContactNumber:
		return &s.ContactNumber
	case FieldPassword:
		return &s.Password
	case FieldConfirmPassword:
		return &s.ConfirmPassword
	case FieldDay:
		return &s.Day
	case FieldMonth:
		return &s.Month
	case FieldYear:
		return &s.Year
	case FieldError:
		return &s.Error
	case FieldSuccess:
		return &s.Success
	default:
		return nil
	}
}

// Severity is the tone of an Alert.
type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// Alert is the outcome of the most recent submission.
type Alert struct {
	Severity Severity
	Message  string
}

// Alert messages.
const (
	MsgPasswordMismatch = "Passwords do not match"
	MsgCreated          = "User account successfully created."
	MsgBusinessError    = "An error occurred"
	MsgTransportError   = "An error occurred while submitting the form"
)

// ConfirmPasswordPattern is the length constraint declared on the
// confirmation field. It is display metadata only; Begin does not check it.
const ConfirmPasswordPattern = `^.{6,}$`

// emailPattern is intentionally loose; do not tighten it.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether v passes the email format check.
func ValidEmail(v string) bool {
	return emailPattern.MatchString(v)
}

// DateOfBirth joins the birthdate selections in "<year> <month> <day>" order.
func DateOfBirth(year, month, day string) string {
	return year + " " + month + " " + day
}

// Session owns the state of one form. It is not safe for concurrent use;
// confine it to a single goroutine such as the Bubble Tea update loop.
type Session struct {
	state        State
	emailInvalid bool
	alert        *Alert
	log          *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for transport failure diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// NewSession creates a Session with an empty form.
func NewSession(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// State returns a copy of the current form values.
func (s *Session) State() State { return s.state }

// EmailInvalid reports whether the last email edit failed the format check.
func (s *Session) EmailInvalid() bool { return s.emailInvalid }

// Alert returns the current alert, or nil when none is shown.
func (s *Session) Alert() *Alert {
	if s.alert == nil {
		return nil
	}
	a := *s.alert
	return &a
}

// Change sets field f to value and clears any alert. Unknown fields are ignored.
func (s *Session) Change(f Field, value string) {
	p := s.state.ptr(f)
	if p == nil {
		return
	}
	*p = value
	if f == FieldEmail {
		s.emailInvalid = !ValidEmail(value)
	}
	s.alert = nil
}

// Begin starts a submission. On a password mismatch it sets the error alert
// and returns a ValidationError result; no request may be sent. Otherwise it
// merges the derived date of birth into the state and returns the request body.
func (s *Session) Begin() (State, *Result) {
	if s.state.Password != s.state.ConfirmPassword {
		s.alert = &Alert{Severity: SeverityError, Message: MsgPasswordMismatch}
		return State{}, &Result{Kind: ValidationError}
	}
	s.state.DateOfBirth = DateOfBirth(s.state.Year, s.state.Month, s.state.Day)
	return s.state, nil
}

// Complete applies the outcome of a submission to the alert and state.
func (s *Session) Complete(res Result) {
	switch res.Kind {
	case Success:
		s.alert = &Alert{Severity: SeveritySuccess, Message: MsgCreated}
		// date_of_birth is left as submitted.
		dob := s.state.DateOfBirth
		s.state = State{DateOfBirth: dob}
	case BusinessError:
		s.alert = &Alert{Severity: SeverityError, Message: MsgBusinessError}
	case TransportError:
		s.log.Error("submit registration", "err", res.Err)
		s.alert = &Alert{Severity: SeverityError, Message: MsgTransportError}
	case ValidationError:
		s.alert = &Alert{Severity: SeverityError, Message: MsgPasswordMismatch}
	}
}

// Submit runs a full submission against c and returns its outcome.
func (s *Session) Submit(ctx context.Context, c Creator) Result {
	body, res := s.Begin()
	if res != nil {
		return *res
	}
	reply, err := c.Create(ctx, body)
	out := Classify(reply, err)
	s.Complete(out)
	return out
}
