package ui

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/raceshot-upload/internal/prefs"
	"github.com/five82/raceshot-upload/internal/upload"
)

// View represents the current active screen.
type View int

const (
	ViewForm View = iota
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Uploader    *upload.Uploader
	Credentials upload.CredentialSaver
	Credential  string
	Prefs       prefs.Prefs
	PrefsPath   string
	LogPath     string
	StartDir    string
	Logger      *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx         context.Context
	uploader    *upload.Uploader
	credentials upload.CredentialSaver
	prefs       prefs.Prefs
	prefsPath   string
	logPath     string
	logger      *slog.Logger

	// UI state
	theme       Theme
	keys        keyMap
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	modal       Modal

	// Form
	form    form
	picker  filepicker.Model
	picking bool

	// Batch state
	spinner   spinner.Model
	uploading bool
	status    viewport.Model
	statusOK  bool
	statusMsg string

	// Log view
	logView  viewport.Model
	logLines []string
	logErr   error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	picker := filepicker.New()
	picker.AllowedTypes = imageExtensions
	picker.AutoHeight = true
	picker.ShowSize = true
	picker.CurrentDirectory = opts.StartDir
	if picker.CurrentDirectory == "" {
		if wd, err := os.Getwd(); err == nil {
			picker.CurrentDirectory = wd
		} else {
			picker.CurrentDirectory = "."
		}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	theme := GetTheme(opts.Prefs.Theme)
	sp.Style = theme.Styles().AccentText

	return Model{
		ctx:         ctx,
		uploader:    opts.Uploader,
		credentials: opts.Credentials,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		logger:      logger,
		theme:       theme,
		keys:        DefaultKeyMap(),
		currentView: ViewForm,
		form: newForm(formValues{
			Credential: opts.Credential,
			EventID:    opts.Prefs.EventID,
			Location:   opts.Prefs.Location,
			Price:      opts.Prefs.Price,
			BibNumber:  opts.Prefs.BibNumber,
		}),
		picker:  picker,
		spinner: sp,
		status:  viewport.New(inputWidth+labelWidth, statusMinHeight),
		logView: viewport.New(80, 20),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.picker.Init(),
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case uploadDoneMsg:
		m.finishUpload(msg)
		return m, nil

	case logLoadedMsg:
		m.handleLogLoaded(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.uploading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Directory reads and cursor blinks.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	cmds = append(cmds, cmd)
	cmds = append(cmds, m.form.update(msg))
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// The form stays locked until the batch finishes.
	if m.uploading {
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		if m.currentView == ViewLogs {
			m.currentView = ViewForm
			return m, nil
		}
		m.currentView = ViewLogs
		return m, loadLogCmd(m.logPath)
	}

	if m.currentView == ViewLogs {
		return m.handleLogsKey(msg)
	}
	if m.picking {
		return m.handlePickerKey(msg)
	}
	return m.handleFormKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.startUpload()

	case key.Matches(msg, m.keys.Browse):
		m.picking = true
		return m, nil

	case key.Matches(msg, m.keys.ClearFiles):
		m.form.clearFiles()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, m.form.next()

	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.prev()

	case key.Matches(msg, m.keys.Confirm):
		switch m.form.focus {
		case fieldFiles:
			m.picking = true
			return m, nil
		case fieldSubmit:
			return m.startUpload()
		default:
			return m, m.form.next()
		}
	}

	return m, m.form.update(msg)
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Browse) {
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.form.toggleFile(path)
	}
	return m, cmd
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewForm
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, loadLogCmd(m.logPath)
	}
	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = m.theme.Styles().AccentText
	m.prefs.Theme = m.theme.Name
	m.savePrefs()
	m.status.SetContent(m.renderStatus())
	m.logView.SetContent(m.renderLogLines())
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save preferences", "error", err)
	}
}

func (m *Model) resize() {
	width := m.width - 4
	if width < labelWidth+10 {
		width = labelWidth + 10
	}
	m.status.Width = width
	m.status.Height = max(statusMinHeight, m.height-formRows()-6)
	m.status.SetContent(m.renderStatus())

	m.logView.Width = m.width
	m.logView.Height = max(1, m.height-3)
	m.logView.SetContent(m.renderLogLines())
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(opts.contextOrBackground()))
	_, err := p.Run()
	return err
}

func (o Options) contextOrBackground() context.Context {
	if o.Context == nil {
		return context.Background()
	}
	return o.Context
}
