package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/teleprompt/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadScriptsCmd(m.gateway, false)}
	if m.reloads != nil {
		cmds = append(cmds, waitForReloadCmd(m.reloads))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.resizeComponents()
		return m, nil
	case ScriptsLoadedMsg:
		return m.onScriptsLoaded(typed)
	case SaveResultMsg:
		return m.onSaveResult(typed)
	case StatusResetMsg:
		if typed.Gen == m.statusGen {
			m.Status = StatusBar{Text: m.idleStatus}
		}
		return m, nil
	case ReloadRequestedMsg:
		next, cmd := m.requestReload()
		if next.reloads != nil {
			return next, tea.Batch(cmd, waitForReloadCmd(next.reloads))
		}
		return next, cmd
	case SetStatusMsg:
		return m.setTransientStatus(typed.Text, typed.IsError)
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.logger.Error("app error", "error", typed.Err)
			return m.setTransientStatus(typed.Err.Error(), true)
		}
		return m, nil
	}
	return m.forwardToInput(msg)
}

// forwardToInput hands other messages, such as cursor blinks, to whichever
// input currently has focus.
func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.Mode == ModeEdit:
		m.editor, cmd = m.editor.Update(msg)
	case m.Mode == ModeTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case m.Palette.Active:
		m.commandInput, cmd = m.commandInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.Mode {
	case ModeEdit:
		return m.handleEditKey(msg)
	case ModeTitle:
		return m.handleTitleKey(msg)
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.SettingsOpen {
		return m.handleSettingsKey(msg)
	}
	if m.OutlineOpen {
		switch msg.String() {
		case "esc", m.Keys.Outline:
			m.OutlineOpen = false
		}
		return m, nil
	}

	keyStr := msg.String()
	switch keyStr {
	case m.Keys.Prev, "h":
		return m.navigate(-1), nil
	case m.Keys.Next, "l", " ":
		return m.navigate(1), nil
	case "up", "k":
		m.scriptView.LineUp(1)
		return m, nil
	case "down", "j":
		m.scriptView.LineDown(1)
		return m, nil
	case m.Keys.Edit:
		return m.enterEdit()
	case m.Keys.Title:
		return m.enterTitle()
	case m.Keys.Settings:
		m.SettingsOpen = true
		return m, nil
	case m.Keys.Outline:
		m.OutlineOpen = true
		return m, nil
	case m.Keys.Copy:
		cmd, err := m.copyScript()
		if err != nil {
			return m.setTransientStatus(err.Error(), true)
		}
		return m, cmd
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		cmd := m.commandInput.Focus()
		return m, cmd
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Minimize:
		return m, tea.Suspend
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	if len(keyStr) == 1 && keyStr[0] >= '1' && keyStr[0] <= '9' {
		return m.gotoSlide(int(keyStr[0] - '0')), nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	state := m.ViewState()

	header := fmt.Sprintf("teleprompt | slide %d", state.Slide)
	if state.Title != "" {
		header += " | " + state.Title
	}
	header += " | mode: " + string(state.Mode)

	var body string
	switch state.Mode {
	case ModeEdit:
		body = views.RenderEditor(views.EditorData{
			Slide:      state.Slide,
			Title:      state.Title,
			EditorView: m.editor.View(),
		})
	case ModeTitle:
		body = views.RenderTitleInput(views.TitleInputData{
			Slide:     state.Slide,
			InputView: m.titleInput.View(),
		})
	default:
		body = m.scriptView.View()
	}

	var overlays []string
	if m.SettingsOpen {
		overlays = append(overlays, m.renderSettings())
	}
	if m.OutlineOpen {
		overlays = append(overlays, m.renderOutline())
	}
	if m.Palette.Active {
		overlays = append(overlays, views.RenderCommandPalette(m.commandInput.View()))
	}
	if help := m.renderHelpIfVisible(); help != "" {
		overlays = append(overlays, help)
	}

	return views.RenderApp(views.AppData{
		Header:     header,
		Body:       body,
		Overlay:    strings.Join(overlays, "\n\n"),
		StatusLine: state.Status.Text,
		IsError:    state.Status.IsError,
		Footer:     m.footer(),
		Width:      m.width,
	})
}

func (m Model) footer() string {
	switch m.Mode {
	case ModeEdit:
		return "keys: ctrl+s save | esc cancel"
	case ModeTitle:
		return "keys: enter save | esc cancel"
	}
	return fmt.Sprintf("keys: ←/→ slide | %s edit | %s title | %s settings | %s outline | %s cmd | %s help | %s quit",
		m.Keys.Edit, m.Keys.Title, m.Keys.Settings, m.Keys.Outline, m.Keys.Palette, m.Keys.Help, m.Keys.Quit)
}
