package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	ttesting "pathogo/internal/tui/testing"
)

func newMock() *ttesting.MockManager {
	return ttesting.NewMockManager(
		map[string]string{
			"vim-fugitive": "tpope/vim-fugitive",
			"vim-sensible": "tpope/vim-sensible",
		},
		map[string]string{
			"nerdtree": "preservim/nerdtree",
		},
	)
}

// loaded returns an app that has finished its initial manifest read.
func loaded(t *testing.T, m *ttesting.MockManager) (*App, *ttesting.TestHarness) {
	t.Helper()
	app := NewApp(context.Background(), m)
	h := ttesting.NewTestHarness(app)
	h.ExecuteCmd(app.Init())
	if app.mode != ModeNormal {
		t.Fatalf("Expected ModeNormal after load, got %v", app.mode)
	}
	return app, h
}

func lastCall(m *ttesting.MockManager) string {
	if len(m.Calls) == 0 {
		return ""
	}
	return m.Calls[len(m.Calls)-1]
}

func callsExcept(m *ttesting.MockManager, skip string) []string {
	var out []string
	for _, c := range m.Calls {
		if c != skip {
			out = append(out, c)
		}
	}
	return out
}

func TestApp_CtrlC_Quits(t *testing.T) {
	app := NewApp(context.Background(), newMock())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Expected a command to be returned")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Error("Ctrl+C should return tea.Quit")
	}
}

func TestApp_Q_QuitsInNormalMode(t *testing.T) {
	_, h := loaded(t, newMock())

	cmd := h.SendKey("q")
	if cmd == nil {
		t.Fatal("Expected a command to be returned")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Error("q should return tea.Quit")
	}
}

func TestApp_WindowSizeMsg_UpdatesDimensions(t *testing.T) {
	app := NewApp(context.Background(), newMock())

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if app.width != 120 || app.height != 40 {
		t.Errorf("Expected 120x40, got %dx%d", app.width, app.height)
	}
}

func TestApp_StartsLoading(t *testing.T) {
	app := NewApp(context.Background(), newMock())

	if app.mode != ModeLoading {
		t.Errorf("Expected ModeLoading, got %v", app.mode)
	}
	if !strings.Contains(app.View(), "Reading manifest") {
		t.Errorf("Loading view should mention the manifest, got:\n%s", app.View())
	}
}

func TestApp_LoadPopulatesList(t *testing.T) {
	app, h := loaded(t, newMock())

	// two headers plus three plugins
	if app.list.Len() != 5 {
		t.Errorf("Expected 5 rows, got %d", app.list.Len())
	}

	view := h.View()
	for _, want := range []string{"Enabled (2)", "Disabled (1)", "vim-fugitive", "vim-sensible", "nerdtree", "preservim/nerdtree"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q:\n%s", want, view)
		}
	}
}

func TestApp_LoadError_ShowsError(t *testing.T) {
	m := newMock()
	m.ListErr = errors.New("failed to read manifest /x/pathogo.json: boom")

	app, h := loaded(t, m)

	if app.err == nil {
		t.Fatal("Expected load error to be kept")
	}
	if !strings.Contains(h.View(), "boom") {
		t.Errorf("View should show the load error:\n%s", h.View())
	}
}

func TestApp_SpaceOnHeader_DoesNothing(t *testing.T) {
	m := newMock()
	_, h := loaded(t, m)

	// cursor starts on the Enabled header
	if cmd := h.SendKey("space"); cmd != nil {
		h.ExecuteCmd(cmd)
	}
	if got := callsExcept(m, "list"); len(got) != 0 {
		t.Errorf("Expected no operations, got %v", got)
	}
}

func TestApp_Space_DisablesThenEnables(t *testing.T) {
	m := newMock()
	app, h := loaded(t, m)

	h.SendKey("j")
	if p := app.list.Selected(); p == nil || p.Name != "vim-fugitive" {
		t.Fatalf("Expected vim-fugitive selected, got %+v", p)
	}

	h.ExecuteCmd(h.SendKey("space"))

	if m.Calls[len(m.Calls)-2] != "disable:vim-fugitive" {
		t.Errorf("Expected disable call, got %v", m.Calls)
	}
	if lastCall(m) != "list" {
		t.Errorf("Expected a reload after the operation, got %v", m.Calls)
	}
	if _, ok := m.Disabled["vim-fugitive"]; !ok {
		t.Error("vim-fugitive should be disabled")
	}
	if app.mode != ModeNormal {
		t.Errorf("Expected ModeNormal after reload, got %v", app.mode)
	}
	if !strings.Contains(app.message, "Disabled: vim-fugitive") {
		t.Errorf("Unexpected status message %q", app.message)
	}

	// the cursor follows the plugin into the Disabled group
	p := app.list.Selected()
	if p == nil || p.Name != "vim-fugitive" || !p.Disabled {
		t.Fatalf("Expected disabled vim-fugitive selected, got %+v", p)
	}

	h.ExecuteCmd(h.SendKey("space"))

	if m.Calls[len(m.Calls)-2] != "enable:vim-fugitive" {
		t.Errorf("Expected enable call, got %v", m.Calls)
	}
	if _, ok := m.Enabled["vim-fugitive"]; !ok {
		t.Error("vim-fugitive should be enabled again")
	}
}

func TestApp_Space_ShowsFailure(t *testing.T) {
	m := newMock()
	m.FailOn["vim-fugitive"] = errors.New("destination already exists")
	app, h := loaded(t, m)

	h.SendKey("j")
	h.ExecuteCmd(h.SendKey("space"))

	if !strings.Contains(app.message, "disable vim-fugitive failed") {
		t.Errorf("Expected failure in status, got %q", app.message)
	}
}

func TestApp_Update_EnabledOnly(t *testing.T) {
	m := newMock()
	app, h := loaded(t, m)

	h.SendKey("j")
	h.ExecuteCmd(h.SendKey("u"))

	if m.Calls[len(m.Calls)-2] != "update:vim-fugitive" {
		t.Errorf("Expected update call, got %v", m.Calls)
	}
	if !strings.Contains(app.message, "Updated: vim-fugitive") {
		t.Errorf("Unexpected status message %q", app.message)
	}

	// nerdtree is the last row and disabled
	h.SendKey("G")
	before := len(m.Calls)
	if cmd := h.SendKey("u"); cmd != nil {
		h.ExecuteCmd(cmd)
	}
	if len(m.Calls) != before {
		t.Errorf("Update on a disabled plugin should do nothing, got %v", m.Calls[before:])
	}
}

func TestApp_Remove_CancelKeepsPlugin(t *testing.T) {
	for _, cancel := range []string{"n", "esc", "enter"} {
		t.Run(cancel, func(t *testing.T) {
			m := newMock()
			app, h := loaded(t, m)

			h.SendKeys("j", "d")
			if app.mode != ModeConfirm {
				t.Fatalf("Expected ModeConfirm, got %v", app.mode)
			}
			if !strings.Contains(h.View(), "Remove vim-fugitive?") {
				t.Errorf("Confirm view should name the plugin:\n%s", h.View())
			}

			// enter confirms the default selection, which is No
			if cmd := h.SendKey(cancel); cmd != nil {
				h.ExecuteCmd(cmd)
			}
			if app.mode != ModeNormal {
				t.Errorf("Expected ModeNormal after cancel, got %v", app.mode)
			}
			if got := callsExcept(m, "list"); len(got) != 0 {
				t.Errorf("Expected no operations, got %v", got)
			}
		})
	}
}

func TestApp_Remove_Confirmed(t *testing.T) {
	m := newMock()
	app, h := loaded(t, m)

	h.SendKeys("j", "d")
	h.ExecuteCmd(h.SendKey("y"))

	if m.Calls[len(m.Calls)-2] != "remove:vim-fugitive" {
		t.Errorf("Expected remove call, got %v", m.Calls)
	}
	if _, ok := m.Enabled["vim-fugitive"]; ok {
		t.Error("vim-fugitive should be gone")
	}
	if app.list.Len() != 4 {
		t.Errorf("Expected 4 rows after removal, got %d", app.list.Len())
	}
	if strings.Contains(h.View(), "tpope/vim-fugitive") {
		t.Errorf("Removed plugin still listed:\n%s", h.View())
	}
}

func TestApp_Remove_LeftSelectsYes(t *testing.T) {
	m := newMock()
	_, h := loaded(t, m)

	h.SendKeys("j", "d", "left")
	h.ExecuteCmd(h.SendKey("enter"))

	if got := callsExcept(m, "list"); len(got) != 1 || got[0] != "remove:vim-fugitive" {
		t.Errorf("Expected a single remove, got %v", got)
	}
}

func TestApp_Reload(t *testing.T) {
	m := newMock()
	app, h := loaded(t, m)

	m.Enabled["vim-surround"] = "tpope/vim-surround"
	h.ExecuteCmd(h.SendKey("r"))

	if app.list.Len() != 6 {
		t.Errorf("Expected 6 rows after reload, got %d", app.list.Len())
	}
	if !strings.Contains(h.View(), "vim-surround") {
		t.Errorf("Reloaded plugin missing:\n%s", h.View())
	}
}

func TestApp_KeysIgnoredWhileBusy(t *testing.T) {
	m := newMock()
	app, h := loaded(t, m)

	h.SendKey("j")
	pending := h.SendKey("space")
	if app.mode != ModeBusy {
		t.Fatalf("Expected ModeBusy, got %v", app.mode)
	}

	if cmd := h.SendKey("d"); cmd != nil {
		t.Error("Keys should be ignored while an operation runs")
	}
	if app.mode != ModeBusy {
		t.Errorf("Mode changed while busy: %v", app.mode)
	}

	h.ExecuteCmd(pending)
	if app.mode != ModeNormal {
		t.Errorf("Expected ModeNormal once the operation finished, got %v", app.mode)
	}
}
