// Package tui renders the registration form as a Bubble Tea program.
// All form state lives in a form.Session owned by the update loop; the
// create-user request runs in a tea.Cmd and reports back as a message.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/register/internal/form"
)

// SubmitResultMsg carries the outcome of a create-user request.
type SubmitResultMsg struct {
	Result form.Result
}

// submitCmd returns a tea.Cmd that sends body through c and wraps the
// classified outcome in a SubmitResultMsg. It must not touch the Session.
func submitCmd(ctx context.Context, c form.Creator, body form.State) tea.Cmd {
	return func() tea.Msg {
		reply, err := c.Create(ctx, body)
		return SubmitResultMsg{Result: form.Classify(reply, err)}
	}
}
