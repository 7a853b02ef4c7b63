package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/teleprompt/internal/model"
	"github.com/sandeepkv93/teleprompt/internal/storage"
	"github.com/sandeepkv93/teleprompt/internal/watch"
)

func loadScriptsCmd(gw ScriptsGateway, reload bool) tea.Cmd {
	return func() tea.Msg {
		if gw == nil {
			return ScriptsLoadedMsg{Raw: model.Raw{}, Reload: reload}
		}
		raw, err := gw.LoadScripts(context.Background())
		return ScriptsLoadedMsg{Raw: raw, Err: err, Reload: reload}
	}
}

// saveScriptsCmd persists a snapshot taken when the save was requested, so
// later edits never leak into an in-flight write.
func saveScriptsCmd(gw ScriptsGateway, seq int, origin saveOrigin, slide int, snapshot model.Raw) tea.Cmd {
	return func() tea.Msg {
		if gw == nil {
			return SaveResultMsg{Seq: seq, Origin: origin, Slide: slide}
		}
		err := gw.SaveScripts(context.Background(), snapshot)
		return SaveResultMsg{Seq: seq, Origin: origin, Slide: slide, Err: err}
	}
}

func waitForReloadCmd(ch <-chan watch.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReloadRequestedMsg{Event: ev}
	}
}

func copyTextCmd(write func(string) error, slide int, text string) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("copy slide %d failed: %w", slide, err)}
		}
		return SetStatusMsg{Text: fmt.Sprintf("Copied %d characters", len([]rune(text)))}
	}
}

func statusResetCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StatusResetMsg{Gen: gen}
	})
}

func (m *Model) loadSettings() {
	s, err := storage.LoadSettings(context.Background(), m.localStorage)
	if err != nil {
		m.logger.Warn("load settings failed, using defaults", "error", err)
	}
	m.Settings = s
}

func (m Model) saveSettings() (Model, tea.Cmd) {
	m.refreshScriptView()
	if err := storage.SaveSettings(context.Background(), m.localStorage, m.Settings); err != nil {
		m.LastError = err
		m.logger.Error("save settings failed", "error", err)
		return m.setTransientStatus("Settings not saved", true)
	}
	m.logger.Debug("settings saved", "font_size", m.Settings.FontSize, "line_height", m.Settings.LineHeight)
	return m, nil
}

// setStatus shows a label that stays until the next status change.
func (m Model) setStatus(text string, isErr bool) Model {
	m.statusGen++
	m.Status = StatusBar{Text: text, IsError: isErr}
	return m
}

// setTransientStatus shows a label that reverts to idle after the reset
// delay. A newer status restarts the delay.
func (m Model) setTransientStatus(text string, isErr bool) (Model, tea.Cmd) {
	m = m.setStatus(text, isErr)
	return m, statusResetCmd(m.statusReset, m.statusGen)
}
