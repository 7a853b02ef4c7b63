package update

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/teleprompt/internal/model"
	"github.com/sandeepkv93/teleprompt/internal/storage"
	"github.com/sandeepkv93/teleprompt/internal/views"
	"github.com/sandeepkv93/teleprompt/internal/watch"
)

type Mode string

const (
	ModeView  Mode = "VIEW"
	ModeEdit  Mode = "EDIT"
	ModeTitle Mode = "TITLE"
)

const (
	StatusSaving     = "Saving..."
	StatusSaved      = "Saved ✓"
	StatusSaveFailed = "Save failed"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Prev     string
	Next     string
	Edit     string
	Title    string
	Settings string
	Outline  string
	Copy     string
	Palette  string
	Help     string
	Minimize string
	Quit     string
}

// ViewState is everything a renderer needs to draw the current slide.
type ViewState struct {
	Slide    int
	Script   string
	Title    string
	Mode     Mode
	EditMode bool
	Status   StatusBar
	Settings model.Settings
}

// ScriptsGateway is the persistence boundary used by the controller.
type ScriptsGateway interface {
	LoadScripts(ctx context.Context) (model.Raw, error)
	SaveScripts(ctx context.Context, raw model.Raw) error
}

type saveOrigin string

const (
	saveOriginScript saveOrigin = "script"
	saveOriginTitle  saveOrigin = "title"
	saveOriginOther  saveOrigin = "palette"
)

type PaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentSlide  int
	Mode          Mode
	Settings      model.Settings
	SettingsOpen  bool
	OutlineOpen   bool
	HelpVisible   bool
	Palette       PaletteState
	Status        StatusBar
	Keys          GlobalKeyMap
	Loaded        bool
	PendingReload bool
	Quitting      bool
	LastError     error

	store        *model.Store
	gateway      ScriptsGateway
	localStorage storage.LocalStorage
	reloads      <-chan watch.Event
	copyText     func(string) error
	logger       *slog.Logger

	idleStatus  string
	statusReset time.Duration
	statusGen   int
	saveSeq     int
	lastSaveAck int
	// editSave is the sequence of the ctrl+s save issued by the current EDIT
	// session, or 0. Only that save may move EDIT back to VIEW.
	editSave int

	editor       textarea.Model
	titleInput   textinput.Model
	commandInput textinput.Model
	scriptView   viewport.Model
	helpModel    help.Model
	width        int
	height       int
}

// Deps are the collaborators supplied by the host process. Every field is
// optional; a nil gateway keeps slides in memory only.
type Deps struct {
	Gateway      ScriptsGateway
	LocalStorage storage.LocalStorage
	Reloads      <-chan watch.Event
	Clipboard    func(string) error
	Logger       *slog.Logger
}

type ScriptsLoadedMsg struct {
	Raw    model.Raw
	Err    error
	Reload bool
}

type SaveResultMsg struct {
	Seq    int
	Origin saveOrigin
	Slide  int
	Err    error
}

type StatusResetMsg struct {
	Gen int
}

type ReloadRequestedMsg struct {
	Event watch.Event
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

// AppErrorMsg reports a failure from a background command.
type AppErrorMsg struct {
	Err error
}

func NewModel() Model {
	return NewModelWithConfig(DefaultRuntimeConfig(), Deps{})
}

func NewModelWithConfig(cfg RuntimeConfig, deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}
	idle := cfg.IdleStatus
	if idle == "" {
		idle = DefaultRuntimeConfig().IdleStatus
	}
	reset := cfg.StatusReset()
	if reset <= 0 {
		reset = DefaultRuntimeConfig().StatusReset()
	}
	m := Model{
		CurrentSlide: 1,
		Mode:         ModeView,
		Settings:     model.DefaultSettings(),
		Status:       StatusBar{Text: idle},
		Keys: GlobalKeyMap{
			Prev:     "left",
			Next:     "right",
			Edit:     "e",
			Title:    "t",
			Settings: "s",
			Outline:  "o",
			Copy:     "y",
			Palette:  "/",
			Help:     "?",
			Minimize: "ctrl+z",
			Quit:     "q",
		},
		store:        model.NewStore(),
		gateway:      deps.Gateway,
		localStorage: deps.LocalStorage,
		reloads:      deps.Reloads,
		copyText:     deps.Clipboard,
		logger:       logger,
		idleStatus:   idle,
		statusReset:  reset,
		width:        views.DefaultWidth,
		height:       24,
	}
	m.loadSettings()
	m.initBubbleComponents()
	m.resizeComponents()
	return m
}

// Store exposes the slide store for inspection.
func (m Model) Store() *model.Store {
	return m.store
}

func (m Model) ViewState() ViewState {
	rec := m.store.Get(m.CurrentSlide)
	return ViewState{
		Slide:    m.CurrentSlide,
		Script:   rec.Script,
		Title:    rec.Title,
		Mode:     m.Mode,
		EditMode: m.Mode == ModeEdit,
		Status:   m.Status,
		Settings: m.Settings,
	}
}

func (m *Model) initBubbleComponents() {
	m.editor = textarea.New()
	m.editor.ShowLineNumbers = false
	m.editor.Placeholder = "Write the script for this slide..."
	m.editor.CharLimit = 0
	m.editor.MaxHeight = 0

	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.Placeholder = "Slide title"
	m.titleInput.CharLimit = 120

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256

	m.scriptView = viewport.New(views.DefaultWidth, 12)
	m.helpModel = help.New()
}

func (m *Model) resizeComponents() {
	inner := m.width - 4
	if inner < 20 {
		inner = 20
	}
	bodyHeight := m.height - 8
	if bodyHeight < 4 {
		bodyHeight = 4
	}
	m.editor.SetWidth(inner)
	m.editor.SetHeight(bodyHeight - 2)
	m.titleInput.Width = inner - len(m.titleInput.Prompt)
	m.commandInput.Width = inner - 2
	m.scriptView.Width = inner
	m.scriptView.Height = bodyHeight
	m.refreshScriptView()
}

func (m *Model) refreshScriptView() {
	rec := m.store.Get(m.CurrentSlide)
	m.scriptView.SetContent(views.RenderScript(views.ScriptData{
		Slide:      m.CurrentSlide,
		Script:     rec.Script,
		FontSize:   m.Settings.FontSize,
		LineHeight: m.Settings.LineHeight,
		Width:      m.scriptView.Width,
	}))
}
