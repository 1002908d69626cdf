package tui

import (
	"github.com/Zaphoood/histedit/src/config"
	"github.com/Zaphoood/histedit/src/document"
	"github.com/Zaphoood/histedit/src/history"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type viewState int

const (
	selectFileView viewState = iota
	editorView
)

type Options struct {
	Config config.Config
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Config.Capacity <= 0 {
		o.Config.Capacity = history.DefaultCapacity
	}
	defaults := config.Default()
	if len(o.Config.Keys.Undo) == 0 {
		o.Config.Keys.Undo = defaults.Keys.Undo
	}
	if len(o.Config.Keys.Redo) == 0 {
		o.Config.Keys.Redo = defaults.Keys.Redo
	}
	return o
}

type MainModel struct {
	// Which sub-model we are currently viewing
	view       viewState
	selectFile tea.Model
	editor     tea.Model
	// Instead of asking the user for input, a path can be passed upon construction
	// This is useful when files are openend via command line arguments
	path    string
	options Options

	windowWidth  int
	windowHeight int
}

func NewMainModel(path string, options Options) MainModel {
	options = options.withDefaults()
	return MainModel{
		view:       selectFileView,
		selectFile: NewFileSelector(options.Config.Capacity),
		path:       path,
		options:    options,
	}
}

func (o Options) historyOpts() []history.Option {
	return []history.Option{history.WithCapacity(o.Config.Capacity)}
}

func (m MainModel) Init() tea.Cmd {
	if len(m.path) > 0 {
		return fileSelectedCmd(m.path, m.options.historyOpts()...)
	}
	return nil
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
	case loadDoneMsg:
		m.options.Logger.Info("Opened document", zap.String("path", msg.doc.Path()))
		cmds = append(cmds, m.initEditorView(msg.doc))
		return m, tea.Batch(cmds...)
	case globalResizeMsg:
		m.windowWidth = msg.width
		m.windowHeight = msg.height
		return m, nil
	}

	switch m.view {
	case selectFileView:
		m.selectFile, cmd = m.selectFile.Update(msg)
	case editorView:
		m.editor, cmd = m.editor.Update(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *MainModel) initEditorView(doc *document.Document) tea.Cmd {
	m.view = editorView
	m.editor = NewEditor(doc, m.options, m.windowWidth, m.windowHeight)
	return m.editor.Init()
}

func (m MainModel) View() string {
	switch m.view {
	case selectFileView:
		return m.selectFile.View()
	case editorView:
		return m.editor.View()
	default:
		m.options.Logger.Error("Invalid view", zap.Int("view", int(m.view)))
		return "Invalid view"
	}
}
