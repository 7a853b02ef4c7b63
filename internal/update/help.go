package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/teleprompt/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.Mode),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "←/h", Action: "previous slide"},
		{Key: "→/l/space", Action: "next slide"},
		{Key: "1-9", Action: "jump to slide"},
		{Key: "↑/↓", Action: "scroll script"},
		{Key: m.Keys.Edit, Action: "edit script"},
		{Key: m.Keys.Title, Action: "edit title"},
		{Key: m.Keys.Settings, Action: "display settings"},
		{Key: m.Keys.Outline, Action: "slide outline"},
		{Key: m.Keys.Copy, Action: "copy script to clipboard"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Minimize, Action: "suspend to shell"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	switch {
	case m.Mode == ModeEdit:
		return []KeyBinding{
			{Key: "ctrl+s", Action: "save script"},
			{Key: "esc", Action: "discard changes"},
		}
	case m.Mode == ModeTitle:
		return []KeyBinding{
			{Key: "enter", Action: "save title"},
			{Key: "esc", Action: "cancel"},
		}
	case m.SettingsOpen:
		return []KeyBinding{
			{Key: "+/-", Action: "font size"},
			{Key: "]/[", Action: "line height"},
			{Key: "esc", Action: "close settings"},
		}
	case m.Palette.Active:
		return []KeyBinding{
			{Key: "goto N", Action: "jump to slide"},
			{Key: "title TEXT", Action: "set slide title"},
			{Key: "clear", Action: "clear slide"},
			{Key: "font N / line X", Action: "display settings"},
			{Key: "copy", Action: "copy script to clipboard"},
			{Key: "reload", Action: "reload from storage"},
		}
	}
	return m.globalBindings()
}

func (m Model) helpBindings() []key.Binding {
	all := m.modeBindings()
	out := make([]key.Binding, 0, len(all))
	for _, b := range all {
		out = append(out, key.NewBinding(key.WithKeys(b.Key), key.WithHelp(b.Key, b.Action)))
	}
	return out
}
