package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#10B981") // Green
	Accent     = lipgloss.Color("#F59E0B") // Amber
	Danger     = lipgloss.Color("#EF4444") // Red
	MutedColor = lipgloss.Color("#6B7280") // Gray
	Subtle     = lipgloss.Color("#374151") // Dark gray

	Muted = lipgloss.NewStyle().
		Foreground(MutedColor)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	// List styles
	SelectedItem = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Primary).
			Padding(0, 1)

	NormalItem = lipgloss.NewStyle().
			Padding(0, 1)

	GroupEnabled = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	GroupDisabled = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent)

	// Status indicators
	StatusEnabled = lipgloss.NewStyle().
			Foreground(Secondary).
			SetString("●")

	StatusDisabled = lipgloss.NewStyle().
			Foreground(Accent).
			SetString("○")

	StatusMissing = lipgloss.NewStyle().
			Foreground(Danger).
			SetString("◌")

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	ConfirmBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	Button = lipgloss.NewStyle().
		Padding(0, 2)

	ButtonActive = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	// Messages
	ErrorMsg = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	SuccessMsg = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	NoticeMsg = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Primary)
)

// FormatHelp formats help text with highlighted keys
func FormatHelp(pairs ...string) string {
	var result string
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += HelpKey.Render(pairs[i]) + " " + pairs[i+1]
	}
	return HelpBar.Render(result)
}
