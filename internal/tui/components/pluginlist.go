package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"pathogo/internal/engine"
	"pathogo/internal/tui/styles"
)

const (
	GroupEnabled  = "Enabled"
	GroupDisabled = "Disabled"

	nameWidth = 28
)

// ListItemType indicates whether a list item is a plugin or a group header
type ListItemType int

const (
	ItemTypePlugin ListItemType = iota
	ItemTypeHeader
)

// Plugin is one manifest entry as shown in the browser.
type Plugin struct {
	engine.ListEntry
	Disabled bool
}

// ListItem is a row of the flattened list
type ListItem struct {
	Type        ListItemType
	Plugin      *Plugin
	HeaderName  string
	Collapsed   bool
	PluginCount int
}

type group struct {
	name    string
	plugins []Plugin
}

// PluginList shows the Enabled and Disabled groups of a listing as one
// scrollable list with collapsible headers.
type PluginList struct {
	groups    []group
	flatItems []ListItem
	collapsed map[string]bool
	keys      KeyMap
	cursor    int
	offset    int
	height    int
}

// NewPluginList creates a list for listing
func NewPluginList(listing engine.Listing) PluginList {
	l := PluginList{
		collapsed: make(map[string]bool),
		keys:      DefaultKeyMap(),
		height:    10,
	}
	l.SetListing(listing)
	return l
}

// SetListing replaces the contents, keeping the cursor on the same plugin
// when it is still listed.
func (l *PluginList) SetListing(listing engine.Listing) {
	var keep string
	if p := l.Selected(); p != nil {
		keep = p.Name
	}

	l.groups = []group{
		{name: GroupEnabled, plugins: toPlugins(listing.Enabled, false)},
		{name: GroupDisabled, plugins: toPlugins(listing.Disabled, true)},
	}
	l.rebuildFlatList()

	if keep != "" {
		for i, item := range l.flatItems {
			if item.Type == ItemTypePlugin && item.Plugin.Name == keep {
				l.cursor = i
				break
			}
		}
	}
	l.adjustCursor()
	l.adjustOffset()
}

func toPlugins(entries []engine.ListEntry, disabled bool) []Plugin {
	plugins := make([]Plugin, 0, len(entries))
	for _, e := range entries {
		plugins = append(plugins, Plugin{ListEntry: e, Disabled: disabled})
	}
	return plugins
}

func (l *PluginList) rebuildFlatList() {
	l.flatItems = nil
	for i := range l.groups {
		g := &l.groups[i]
		l.flatItems = append(l.flatItems, ListItem{
			Type:        ItemTypeHeader,
			HeaderName:  g.name,
			Collapsed:   l.collapsed[g.name],
			PluginCount: len(g.plugins),
		})
		if l.collapsed[g.name] {
			continue
		}
		for j := range g.plugins {
			l.flatItems = append(l.flatItems, ListItem{
				Type:   ItemTypePlugin,
				Plugin: &g.plugins[j],
			})
		}
	}
	l.adjustCursor()
}

func (l *PluginList) adjustCursor() {
	if l.cursor >= len(l.flatItems) {
		l.cursor = len(l.flatItems) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// adjustOffset keeps the cursor inside the viewport
func (l *PluginList) adjustOffset() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
}

// SetHeight sets the visible height
func (l *PluginList) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	l.height = h
	l.adjustOffset()
}

// Selected returns the plugin under the cursor, or nil on a header
func (l *PluginList) Selected() *Plugin {
	if l.cursor < 0 || l.cursor >= len(l.flatItems) {
		return nil
	}
	return l.flatItems[l.cursor].Plugin
}

// Len returns the number of visible rows
func (l *PluginList) Len() int {
	return len(l.flatItems)
}

// Update handles navigation keys
func (l *PluginList) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, l.keys.Up):
		l.MoveUp()
	case key.Matches(km, l.keys.Down):
		l.MoveDown()
	case key.Matches(km, l.keys.Top):
		l.MoveToTop()
	case key.Matches(km, l.keys.Bottom):
		l.MoveToBottom()
	case key.Matches(km, l.keys.Collapse):
		l.ToggleCurrentGroup()
	}
	return nil
}

// MoveUp moves the cursor up
func (l *PluginList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.adjustOffset()
	}
}

// MoveDown moves the cursor down
func (l *PluginList) MoveDown() {
	if l.cursor < len(l.flatItems)-1 {
		l.cursor++
		l.adjustOffset()
	}
}

// MoveToTop moves to the first row
func (l *PluginList) MoveToTop() {
	l.cursor = 0
	l.offset = 0
}

// MoveToBottom moves to the last plugin
func (l *PluginList) MoveToBottom() {
	for i := len(l.flatItems) - 1; i >= 0; i-- {
		if l.flatItems[i].Type == ItemTypePlugin {
			l.cursor = i
			l.adjustOffset()
			return
		}
	}
}

// ToggleCurrentGroup collapses or expands the group under the cursor
func (l *PluginList) ToggleCurrentGroup() {
	name := l.currentGroup()
	if name == "" {
		return
	}
	l.collapsed[name] = !l.collapsed[name]
	l.rebuildFlatList()

	// Park the cursor on the toggled header.
	for i, item := range l.flatItems {
		if item.Type == ItemTypeHeader && item.HeaderName == name {
			l.cursor = i
			break
		}
	}
	l.adjustOffset()
}

func (l *PluginList) currentGroup() string {
	var name string
	for i := 0; i <= l.cursor && i < len(l.flatItems); i++ {
		if l.flatItems[i].Type == ItemTypeHeader {
			name = l.flatItems[i].HeaderName
		}
	}
	return name
}

// View renders the visible rows
func (l *PluginList) View() string {
	var b strings.Builder

	end := l.offset + l.height
	if end > len(l.flatItems) {
		end = len(l.flatItems)
	}
	for i := l.offset; i < end; i++ {
		item := l.flatItems[i]
		if item.Type == ItemTypeHeader {
			b.WriteString(renderHeader(item, i == l.cursor))
		} else {
			b.WriteString(renderPlugin(item.Plugin, i == l.cursor))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if len(l.flatItems) > l.height {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  [%d/%d]", l.cursor+1, len(l.flatItems))))
	}
	return b.String()
}

func renderHeader(item ListItem, selected bool) string {
	indicator := "▼"
	if item.Collapsed {
		indicator = "▶"
	}
	text := fmt.Sprintf("%s %s (%d)", indicator, item.HeaderName, item.PluginCount)

	switch {
	case selected:
		return styles.SelectedItem.Render(text)
	case item.HeaderName == GroupDisabled:
		return styles.GroupDisabled.Render(text)
	default:
		return styles.GroupEnabled.Render(text)
	}
}

func renderPlugin(p *Plugin, selected bool) string {
	status := styles.StatusEnabled.String()
	switch {
	case !p.Installed:
		status = styles.StatusMissing.String()
	case p.Disabled:
		status = styles.StatusDisabled.String()
	}

	name := ansi.Truncate(p.Name, nameWidth, "…")
	line := fmt.Sprintf("  %s %-*s %s", status, nameWidth, name, styles.Muted.Render(p.RepoID))
	if !p.Installed {
		line += styles.Muted.Render(" [not installed]")
	}

	if selected {
		return styles.SelectedItem.Render(line)
	}
	return styles.NormalItem.Render(line)
}
