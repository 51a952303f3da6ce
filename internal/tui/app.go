package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	slogcontext "github.com/veqryn/slog-context"

	"pathogo/internal/engine"
	"pathogo/internal/tui/components"
	"pathogo/internal/tui/styles"
)

// Manager is the subset of the engine the browser drives.
type Manager interface {
	List(opts engine.ListOptions) (engine.Listing, error)
	Enable(ctx context.Context, names []string) ([]engine.Result, error)
	Disable(ctx context.Context, names []string) ([]engine.Result, error)
	Update(ctx context.Context, name string, all bool) ([]engine.Result, error)
	Remove(ctx context.Context, name string) (engine.Result, error)
}

// Mode represents the application mode
type Mode int

const (
	ModeLoading Mode = iota
	ModeNormal
	ModeConfirm
	ModeBusy
)

// App is the browser's Bubble Tea model
type App struct {
	ctx     context.Context
	manager Manager
	keys    components.KeyMap

	list    components.PluginList
	spinner spinner.Model

	mode        Mode
	busyMsg     string
	confirmName string
	confirmSel  int // 0 = yes, 1 = no

	message string
	err     error
	width   int
	height  int
}

// Messages
type (
	loadedMsg  struct{ listing engine.Listing }
	loadErrMsg struct{ err error }
	opDoneMsg  struct {
		action  string
		results []engine.Result
		err     error
	}
)

// NewApp creates the browser model
func NewApp(ctx context.Context, m Manager) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return &App{
		ctx:     ctx,
		manager: m,
		keys:    components.DefaultKeyMap(),
		list:    components.NewPluginList(engine.Listing{}),
		spinner: s,
		mode:    ModeLoading,
		busyMsg: "Reading manifest...",
	}
}

// Init loads the manifest
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.load, a.spinner.Tick)
}

func (a *App) load() tea.Msg {
	listing, err := a.manager.List(engine.ListOptions{})
	if err != nil {
		return loadErrMsg{err}
	}
	return loadedMsg{listing}
}

// Update handles all application events
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetHeight(msg.Height - 6) // title, message and help bar
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.mode {
		case ModeNormal:
			return a.updateNormal(msg)
		case ModeConfirm:
			return a.updateConfirm(msg)
		}
		return a, nil

	case spinner.TickMsg:
		if a.mode != ModeLoading && a.mode != ModeBusy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case loadedMsg:
		a.list.SetListing(msg.listing)
		a.err = nil
		a.mode = ModeNormal
		return a, nil

	case loadErrMsg:
		a.err = msg.err
		a.mode = ModeNormal
		return a, nil

	case opDoneMsg:
		a.message = summarize(msg)
		a.mode = ModeBusy
		a.busyMsg = "Reloading..."
		return a, a.load
	}

	return a, nil
}

func (a *App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected := a.list.Selected()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Reload):
		a.message = ""
		return a.busy("Reloading...", a.load)

	case key.Matches(msg, a.keys.Toggle):
		if selected == nil {
			return a, nil
		}
		names := []string{selected.Name}
		if selected.Disabled {
			return a.busy(fmt.Sprintf("Enabling %s...", selected.Name), a.run("enable", func() ([]engine.Result, error) {
				return a.manager.Enable(a.ctx, names)
			}))
		}
		return a.busy(fmt.Sprintf("Disabling %s...", selected.Name), a.run("disable", func() ([]engine.Result, error) {
			return a.manager.Disable(a.ctx, names)
		}))

	case key.Matches(msg, a.keys.Update):
		if selected == nil || selected.Disabled {
			return a, nil
		}
		name := selected.Name
		return a.busy(fmt.Sprintf("Updating %s...", name), a.run("update", func() ([]engine.Result, error) {
			return a.manager.Update(a.ctx, name, false)
		}))

	case key.Matches(msg, a.keys.Remove):
		if selected == nil {
			return a, nil
		}
		a.confirmName = selected.Name
		a.confirmSel = 1
		a.mode = ModeConfirm
		return a, nil
	}

	return a, a.list.Update(msg)
}

func (a *App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		a.confirmSel = 0
	case "right", "l":
		a.confirmSel = 1
	case "y", "Y":
		a.confirmSel = 0
		return a.executeConfirm()
	case "n", "N", "esc", "q":
		a.mode = ModeNormal
	case "enter":
		return a.executeConfirm()
	}
	return a, nil
}

func (a *App) executeConfirm() (tea.Model, tea.Cmd) {
	if a.confirmSel != 0 {
		a.mode = ModeNormal
		return a, nil
	}
	name := a.confirmName
	return a.busy(fmt.Sprintf("Removing %s...", name), a.run("remove", func() ([]engine.Result, error) {
		r, err := a.manager.Remove(a.ctx, name)
		return []engine.Result{r}, err
	}))
}

func (a *App) busy(label string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	a.mode = ModeBusy
	a.busyMsg = label
	return a, tea.Batch(cmd, a.spinner.Tick)
}

func (a *App) run(action string, op func() ([]engine.Result, error)) tea.Cmd {
	return func() tea.Msg {
		results, err := op()
		return opDoneMsg{action: action, results: results, err: err}
	}
}

// summarize renders the outcome of an operation as one status line.
func summarize(msg opDoneMsg) string {
	if msg.err != nil {
		return styles.ErrorMsg.Render(fmt.Sprintf("%s failed: %v", msg.action, msg.err))
	}

	var parts []string
	for _, r := range msg.results {
		switch {
		case r.Failed():
			parts = append(parts, styles.ErrorMsg.Render(fmt.Sprintf("%s %s failed: %v", msg.action, r.Name, r.Err)))
		case r.NotFound && msg.action != "remove":
			parts = append(parts, styles.NoticeMsg.Render(fmt.Sprintf("%s is not installed. No action taken.", r.Name)))
		case r.Skipped:
			parts = append(parts, styles.NoticeMsg.Render(fmt.Sprintf("Nothing to %s for %s.", msg.action, r.Name)))
		default:
			parts = append(parts, styles.SuccessMsg.Render(fmt.Sprintf("%s: %s", pastTense(msg.action), r.Name)))
		}
	}
	return strings.Join(parts, "  ")
}

func pastTense(action string) string {
	switch action {
	case "enable":
		return "Enabled"
	case "disable":
		return "Disabled"
	case "update":
		return "Updated"
	case "remove":
		return "Removed"
	}
	return action
}

// View renders the screen
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("pathogo"))
	b.WriteString("\n")

	if a.mode == ModeLoading {
		b.WriteString(a.spinner.View() + " " + a.busyMsg)
		return b.String()
	}

	if a.mode == ModeConfirm {
		b.WriteString(a.renderConfirm())
		return b.String()
	}

	b.WriteString(a.list.View())
	b.WriteString("\n\n")

	switch {
	case a.mode == ModeBusy:
		b.WriteString(a.spinner.View() + " " + a.busyMsg)
	case a.err != nil:
		b.WriteString(styles.ErrorMsg.Render(a.err.Error()))
	default:
		b.WriteString(a.fit(a.message))
	}
	b.WriteString("\n")

	b.WriteString(styles.FormatHelp(components.HelpPairs(
		a.keys.Toggle, a.keys.Update, a.keys.Remove, a.keys.Reload, a.keys.Collapse, a.keys.Quit,
	)...))
	return b.String()
}

// fit truncates s to the window width once the size is known.
func (a *App) fit(s string) string {
	if a.width <= 0 {
		return s
	}
	return ansi.Truncate(s, a.width, "…")
}

func (a *App) renderConfirm() string {
	yes := styles.Button.Render("Yes")
	no := styles.Button.Render("No")
	if a.confirmSel == 0 {
		yes = styles.ButtonActive.Render("Yes")
	} else {
		no = styles.ButtonActive.Render("No")
	}

	body := fmt.Sprintf("Remove %s?\n\nIts directory and manifest entry will be deleted.\n\n%s  %s",
		a.confirmName, yes, no)
	return styles.ConfirmBox.Render(body) + "\n" + styles.FormatHelp(
		"y", "yes",
		"n", "no",
		"←/→", "select",
		"enter", "confirm",
	)
}

// Run starts the browser and blocks until it exits.
func Run(ctx context.Context, m Manager) error {
	// Log lines would corrupt the alternate screen; the browser reports
	// failures in its status line.
	ctx = slogcontext.NewCtx(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)))

	p := tea.NewProgram(NewApp(ctx, m), tea.WithAltScreen(), tea.WithContext(ctx))
	model, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if app, ok := model.(*App); ok && app.err != nil {
		return app.err
	}
	return nil
}
