package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/teleprompt/internal/model"
	"github.com/sandeepkv93/teleprompt/internal/views"
)

const settingsPreview = "The quick brown fox jumps over the lazy dog.\nSecond line of the preview."

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next := m.Settings
	switch msg.String() {
	case "esc", m.Keys.Settings:
		m.SettingsOpen = false
		return m, nil
	case "+", "=":
		next = m.Settings.WithFontSize(model.FontSizeStep)
	case "-", "_":
		next = m.Settings.WithFontSize(-model.FontSizeStep)
	case "]":
		next = m.Settings.WithLineHeight(model.LineHeightStep)
	case "[":
		next = m.Settings.WithLineHeight(-model.LineHeightStep)
	default:
		return m, nil
	}
	return m.applySettings(next)
}

func (m Model) applySettings(s model.Settings) (Model, tea.Cmd) {
	s = s.Clamp()
	if s == m.Settings {
		return m, nil
	}
	m.Settings = s
	return m.saveSettings()
}

func (m Model) renderSettings() string {
	return views.RenderSettings(views.SettingsData{
		FontSizeLabel:   m.Settings.FontSizeLabel(),
		LineHeightLabel: m.Settings.LineHeightLabel(),
		Preview: views.RenderScript(views.ScriptData{
			Script:     settingsPreview,
			FontSize:   m.Settings.FontSize,
			LineHeight: m.Settings.LineHeight,
			Width:      m.scriptView.Width,
		}),
	})
}
