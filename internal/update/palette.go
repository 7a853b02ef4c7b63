package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/teleprompt/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		return m.setTransientStatus(err.Error(), true)
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			m = m.gotoSlide(a.Slide)
			return commands.Result{Message: fmt.Sprintf("slide %d", m.CurrentSlide)}, nil
		},
		Title: func(a commands.TitleArgs) (commands.Result, error) {
			m.store.SetTitle(m.CurrentSlide, a.Text)
			m, follow = m.flush(saveOriginTitle)
			return commands.Result{}, nil
		},
		Clear: func() (commands.Result, error) {
			m.store.SetScript(m.CurrentSlide, "")
			m.store.SetTitle(m.CurrentSlide, "")
			m.refreshScriptView()
			m, follow = m.flush(saveOriginOther)
			return commands.Result{}, nil
		},
		Font: func(a commands.FontArgs) (commands.Result, error) {
			next := m.Settings
			next.FontSize = a.Size
			m, follow = m.applySettings(next)
			if follow != nil {
				return commands.Result{}, nil
			}
			return commands.Result{Message: "font size " + m.Settings.FontSizeLabel()}, nil
		},
		Line: func(a commands.LineArgs) (commands.Result, error) {
			next := m.Settings
			next.LineHeight = a.Height
			m, follow = m.applySettings(next)
			if follow != nil {
				return commands.Result{}, nil
			}
			return commands.Result{Message: "line height " + m.Settings.LineHeightLabel()}, nil
		},
		Copy: func() (commands.Result, error) {
			cmd, err := m.copyScript()
			if err != nil {
				return commands.Result{}, err
			}
			follow = cmd
			return commands.Result{}, nil
		},
		Reload: func() (commands.Result, error) {
			if m.gateway == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no storage configured"}
			}
			follow = loadScriptsCmd(m.gateway, true)
			return commands.Result{}, nil
		},
	})
	if err != nil {
		m.logger.Warn("palette command failed", "input", raw, "error", err)
		return m.setTransientStatus(err.Error(), true)
	}
	if res.Message == "" {
		return m, follow
	}
	return m.setTransientStatus(res.Message, false)
}

// copyScript returns a command that puts the current slide's script on the
// system clipboard.
func (m Model) copyScript() (tea.Cmd, error) {
	script := m.store.Get(m.CurrentSlide).Script
	if script == "" {
		return nil, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "slide has no script to copy"}
	}
	return copyTextCmd(m.copyText, m.CurrentSlide, script), nil
}
