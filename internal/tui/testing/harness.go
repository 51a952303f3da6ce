package testing

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// TestHarness drives a Bubble Tea model with synthetic messages
type TestHarness struct {
	model tea.Model
}

// NewTestHarness creates a new test harness wrapping a Bubble Tea model
func NewTestHarness(model tea.Model) *TestHarness {
	return &TestHarness{model: model}
}

// SendKey sends a single key message and returns the resulting command
func (h *TestHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(KeyMsg(key))
}

// SendKeys sends multiple key messages in sequence
func (h *TestHarness) SendKeys(keys ...string) []tea.Cmd {
	cmds := make([]tea.Cmd, len(keys))
	for i, key := range keys {
		cmds[i] = h.SendKey(key)
	}
	return cmds
}

// SendMsg sends any tea.Msg to the model
func (h *TestHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

// ExecuteCmd runs cmd, feeds its message back into the model and follows
// the commands that produces until none are left. Batches run in order.
// Spinner ticks are dropped so an animating model still settles.
func (h *TestHarness) ExecuteCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, h.ExecuteCmd(c)...)
		}
		return msgs
	}
	if msg == nil || IsTick(msg) {
		return nil
	}
	next := h.SendMsg(msg)
	return append([]tea.Msg{msg}, h.ExecuteCmd(next)...)
}

// IsTick reports whether msg is a spinner animation frame.
func IsTick(msg tea.Msg) bool {
	_, ok := msg.(spinner.TickMsg)
	return ok
}

// View returns the current view of the model
func (h *TestHarness) View() string {
	return h.model.View()
}

// KeyMsg converts a key string to a tea.KeyMsg. Named keys such as "enter",
// "esc", "space", "up" and "ctrl+c" are recognized; anything else is sent as
// literal runes.
func KeyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
