package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/teleprompt/internal/model"
)

func (m Model) navigate(delta int) Model {
	return m.gotoSlide(m.CurrentSlide + delta)
}

// gotoSlide moves to slide n. Slides have no upper bound; anything below 1
// leaves the current slide unchanged.
func (m Model) gotoSlide(n int) Model {
	if m.Mode != ModeView || n < 1 || n == m.CurrentSlide {
		return m
	}
	direction := "next"
	if n < m.CurrentSlide {
		direction = "prev"
	}
	m.CurrentSlide = n
	m.scriptView.GotoTop()
	m.refreshScriptView()
	m.logger.Info("navigate slide", "direction", direction, "slide", n)
	return m
}

func (m Model) enterEdit() (Model, tea.Cmd) {
	m.Mode = ModeEdit
	m.editSave = 0
	m.editor.SetValue(m.store.Get(m.CurrentSlide).Script)
	cmd := m.editor.Focus()
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editSave = 0
		m.editor.Blur()
		m.editor.Reset()
		return m.returnToView()
	case "ctrl+s":
		m.store.SetScript(m.CurrentSlide, m.editor.Value())
		next, cmd := m.flush(saveOriginScript)
		next.editSave = next.saveSeq
		return next, cmd
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) enterTitle() (Model, tea.Cmd) {
	m.Mode = ModeTitle
	m.titleInput.SetValue(m.store.Get(m.CurrentSlide).Title)
	m.titleInput.CursorEnd()
	cmd := m.titleInput.Focus()
	return m, cmd
}

func (m Model) handleTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.titleInput.Blur()
		m.titleInput.SetValue("")
		return m.returnToView()
	case "enter":
		m.store.SetTitle(m.CurrentSlide, m.titleInput.Value())
		m.titleInput.Blur()
		m.titleInput.SetValue("")
		next, viewCmd := m.returnToView()
		next, saveCmd := next.flush(saveOriginTitle)
		return next, tea.Batch(viewCmd, saveCmd)
	}
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

// returnToView leaves EDIT or TITLE and runs a reload that arrived while the
// user was typing.
func (m Model) returnToView() (Model, tea.Cmd) {
	m.Mode = ModeView
	m.refreshScriptView()
	if m.PendingReload {
		m.PendingReload = false
		return m, loadScriptsCmd(m.gateway, true)
	}
	return m, nil
}

func (m Model) flush(origin saveOrigin) (Model, tea.Cmd) {
	m.saveSeq++
	m = m.setStatus(StatusSaving, false)
	return m, saveScriptsCmd(m.gateway, m.saveSeq, origin, m.CurrentSlide, m.store.Serialize())
}

func (m Model) onSaveResult(msg SaveResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.LastError = msg.Err
		m.logger.Error("save scripts failed", "seq", msg.Seq, "origin", string(msg.Origin), "slide", msg.Slide, "error", msg.Err)
	} else {
		m.logger.Debug("scripts saved", "seq", msg.Seq, "origin", string(msg.Origin), "slide", msg.Slide)
	}

	var viewCmd tea.Cmd
	ownSave := m.editSave != 0 && msg.Seq == m.editSave && msg.Seq == m.saveSeq
	if msg.Err == nil && ownSave && msg.Origin == saveOriginScript && m.Mode == ModeEdit && msg.Slide == m.CurrentSlide {
		m.editSave = 0
		m.editor.Blur()
		m.editor.Reset()
		m, viewCmd = m.returnToView()
	}

	if msg.Seq < m.lastSaveAck {
		return m, viewCmd
	}
	m.lastSaveAck = msg.Seq
	text := StatusSaved
	if msg.Err != nil {
		text = StatusSaveFailed
	}
	next, statusCmd := m.setTransientStatus(text, msg.Err != nil)
	return next, tea.Batch(viewCmd, statusCmd)
}

func (m Model) requestReload() (Model, tea.Cmd) {
	if m.gateway == nil {
		return m, nil
	}
	if m.Mode != ModeView {
		m.PendingReload = true
		return m, nil
	}
	return m, loadScriptsCmd(m.gateway, true)
}

func (m Model) onScriptsLoaded(msg ScriptsLoadedMsg) (tea.Model, tea.Cmd) {
	store, err := m.buildStore(msg)
	if err != nil {
		m.LastError = err
		if msg.Reload {
			m.logger.Error("reload scripts failed", "error", err)
			return m.setTransientStatus("Reload failed", true)
		}
		m.logger.Error("load scripts failed, starting empty", "error", err)
		m.Loaded = true
		m.store = model.NewStore()
		m.refreshScriptView()
		return m.setTransientStatus("Load failed", true)
	}

	if !msg.Reload {
		m.Loaded = true
		m.store = store
		m.refreshScriptView()
		m.logger.Info("scripts loaded", "slides", store.Len())
		return m, nil
	}

	if m.Mode != ModeView {
		m.PendingReload = true
		return m, nil
	}
	if store.Equal(m.store) {
		return m, nil
	}
	m.store = store
	m.refreshScriptView()
	m.logger.Info("scripts reloaded", "slides", store.Len())
	return m.setTransientStatus("Reloaded from disk", false)
}

func (m Model) buildStore(msg ScriptsLoadedMsg) (*model.Store, error) {
	if msg.Err != nil {
		return nil, msg.Err
	}
	return model.Load(msg.Raw)
}
