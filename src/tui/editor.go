package tui

import (
	"fmt"
	"strings"

	"github.com/Zaphoood/histedit/src/document"
	"github.com/Zaphoood/histedit/src/history"
	"github.com/Zaphoood/histedit/src/snapshot"
	"github.com/Zaphoood/histedit/src/util"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

/* Model for editing a document. Every change of the text is recorded in the
document's history and can be undone and redone */

const NO_WRITE_SINCE_LAST_CHANGE = "No write since last change (add ! to override)"

type Editor struct {
	textarea textarea.Model
	cmdLine  CommandLine
	keys     keyMap
	doc      *document.Document
	notifier *historyNotifier
	options  Options

	// The most recent :yank. Only a pending yank is cleared from the clipboard.
	yankID      int
	yankPending bool

	windowWidth  int
	windowHeight int
}

func NewEditor(doc *document.Document, options Options, windowWidth, windowHeight int) Editor {
	options = options.withDefaults()
	input := textarea.New()
	input.Prompt = ""
	input.ShowLineNumbers = true
	input.CharLimit = 0
	input.MaxHeight = 0
	input.SetValue(doc.Text())
	input.Focus()

	e := Editor{
		textarea:     input,
		cmdLine:      NewCommandLine(),
		keys:         newKeyMap(options.Config.Keys),
		doc:          doc,
		notifier:     newHistoryNotifier(doc.History()),
		options:      options,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
	}
	e.resize()
	return e
}

func (e *Editor) resize() {
	e.textarea.SetWidth(e.windowWidth)
	// One line each for the status line and the command line
	e.textarea.SetHeight(util.Max(e.windowHeight-1-e.cmdLine.GetHeight(), 1))
}

func (e Editor) Init() tea.Cmd {
	return nil
}

func (e Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case clearClipboardMsg:
		if msg.id == e.yankID && e.clipboardNeedsClear() {
			clearClipboard()
			e.yankPending = false
		}
		return e, nil
	case clipboardChangedMsg:
		if msg.id == e.yankID {
			e.yankPending = false
		}
		return e, nil
	case clearClipboardAndQuitMsg:
		if e.clipboardNeedsClear() {
			clearClipboard()
		}
		return e, tea.Quit
	case setCommandLineMessageMsg:
		e.cmdLine.SetMessage(msg.msg)
		return e, nil
	case commandInputMsg:
		cmd = e.handleCommand(msg.cmd)
		return e, cmd
	case saveDoneMsg:
		e.doc.MarkSaved(msg.path, msg.text)
		e.options.Logger.Info("Saved document", zap.String("path", msg.path))
		e.cmdLine.SetMessage(fmt.Sprintf("Saved to %s", msg.path))
		return e, msg.andThen
	case saveFailedMsg:
		e.options.Logger.Error("Failed to save document", zap.Error(msg.err))
		e.cmdLine.SetMessage(fmt.Sprintf("Error while saving: %s", msg.err))
		return e, nil
	case loadFailedMsg:
		e.options.Logger.Error("Failed to load document", zap.Error(msg.err))
		e.cmdLine.SetMessage(fmt.Sprintf("Error while loading: %s", msg.err))
		return e, nil
	case reloadDoneMsg:
		e.doc.Load(msg.text)
		e.syncTextarea()
		e.cmdLine.SetMessage(fmt.Sprintf("Reloaded %s", e.doc.Path()))
		return e, nil
	case snapshotSavedMsg:
		e.options.Logger.Info("Saved snapshot", zap.String("path", msg.path), zap.Int("entries", msg.entries))
		e.cmdLine.SetMessage(fmt.Sprintf("Saved %s to %s", pluralize(msg.entries, "entry", "entries"), msg.path))
		return e, nil
	case snapshotFailedMsg:
		e.options.Logger.Error("Snapshot failed", zap.Error(msg.err))
		e.cmdLine.SetMessage(fmt.Sprintf("Error: %s", msg.err))
		return e, nil
	case snapshotRestoredMsg:
		e.restoreHistory(msg.history)
		e.cmdLine.SetMessage(fmt.Sprintf("Restored %s from %s", pluralize(msg.history.Len(), "entry", "entries"), msg.path))
		return e, nil
	case tea.WindowSizeMsg:
		e.windowWidth = msg.Width
		e.windowHeight = msg.Height
		e.resize()
		return e, globalResizeCmd(msg.Width, msg.Height)
	case tea.KeyMsg:
		if e.cmdLine.Focused() {
			// The command line is a text input of its own, undo and redo keys must not reach the document
			return e, e.updateCommandLine(msg)
		}
		switch {
		case key.Matches(msg, e.keys.Quit):
			e.cmdLine.SetMessage("Type  :q  and press <Enter> to exit")
			return e, nil
		case key.Matches(msg, e.keys.Command):
			e.textarea.Blur()
			return e, e.cmdLine.StartInput()
		case key.Matches(msg, e.keys.Undo):
			e.undo()
			return e, nil
		case key.Matches(msg, e.keys.Redo):
			e.redo()
			return e, nil
		}
		return e, e.updateTextarea(msg)
	}

	if e.cmdLine.Focused() {
		return e, e.updateCommandLine(msg)
	}
	e.textarea, cmd = e.textarea.Update(msg)
	return e, cmd
}

func (e *Editor) updateCommandLine(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.cmdLine, cmd = e.cmdLine.Update(msg)
	if !e.cmdLine.Focused() && !e.textarea.Focused() {
		e.textarea.Focus()
	}
	return cmd
}

// updateTextarea passes msg on to the text area and records the resulting text
func (e *Editor) updateTextarea(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	if e.doc.Edit(e.textarea.Value()) {
		e.options.Logger.Debug("Recorded edit", zap.Int("entries", e.doc.History().Len()))
	}
	return cmd
}

func (e *Editor) syncTextarea() {
	e.textarea.SetValue(e.doc.Text())
}

func (e *Editor) undo() {
	if !e.doc.Undo() {
		e.cmdLine.SetMessage(AT_OLDEST_CHANGE)
		return
	}
	e.syncTextarea()
	e.cmdLine.SetMessage(e.notifier.take())
}

func (e *Editor) redo() {
	if !e.doc.Redo() {
		e.cmdLine.SetMessage(AT_NEWEST_CHANGE)
		return
	}
	e.syncTextarea()
	e.cmdLine.SetMessage(e.notifier.take())
}

func (e *Editor) restoreHistory(h *history.Store[string]) {
	e.doc.Restore(h)
	e.notifier = newHistoryNotifier(h)
	e.syncTextarea()
}

func (e *Editor) handleCommand(cmd []string) tea.Cmd {
	if len(cmd) == 0 {
		return nil
	}
	switch cmd[0] {
	case "q", "q!":
		return e.handleQuitCmd(cmd)
	case "w":
		return e.handleSaveCmd(cmd, false)
	case "wq", "x":
		return e.handleSaveCmd(cmd, true)
	case "e", "e!":
		return e.handleEditCmd(cmd)
	case "reset", "reset!":
		return e.handleResetCmd(cmd)
	case "clear":
		return e.handleClearCmd(cmd)
	case "snapshot":
		return e.handleSnapshotCmd(cmd)
	case "restore":
		return e.handleRestoreCmd(cmd)
	case "yank", "y":
		return e.handleYankCmd(cmd)
	default:
		e.cmdLine.SetMessage(fmt.Sprintf("Not a command: %s", cmd[0]))
		return nil
	}
}

func forced(cmd []string) bool {
	return strings.HasSuffix(cmd[0], "!")
}

func (e *Editor) checkArgs(cmd []string, minArgs, maxArgs int) bool {
	if len(cmd)-1 > maxArgs {
		e.cmdLine.SetMessage("Error: Too many arguments")
		return false
	}
	if len(cmd)-1 < minArgs {
		e.cmdLine.SetMessage("Error: Too few arguments")
		return false
	}
	return true
}

func (e *Editor) handleQuitCmd(cmd []string) tea.Cmd {
	if !e.checkArgs(cmd, 0, 0) {
		return nil
	}
	if e.doc.Dirty() && !forced(cmd) {
		e.cmdLine.SetMessage(NO_WRITE_SINCE_LAST_CHANGE)
		return nil
	}
	return quitCmd
}

func (e *Editor) handleSaveCmd(cmd []string, quit bool) tea.Cmd {
	if !e.checkArgs(cmd, 0, 1) {
		return nil
	}

	var andThen tea.Cmd
	if quit {
		andThen = quitCmd
	}
	path := e.doc.Path()
	if len(cmd) == 2 {
		expanded, err := expand(cmd[1])
		if err != nil {
			e.cmdLine.SetMessage(fmt.Sprintf("Error: %s", err))
			return nil
		}
		path = expanded
	}
	e.cmdLine.SetMessage("Saving...")
	return saveToPathCmd(path, e.doc.Text(), andThen)
}

func (e *Editor) handleEditCmd(cmd []string) tea.Cmd {
	if !e.checkArgs(cmd, 0, 1) {
		return nil
	}
	if e.doc.Dirty() && !forced(cmd) {
		e.cmdLine.SetMessage(NO_WRITE_SINCE_LAST_CHANGE)
		return nil
	}
	path := e.doc.Path()
	if len(cmd) == 2 {
		path = cmd[1]
	}
	e.cmdLine.SetMessage("Loading...")
	return fileSelectedCmd(path, history.WithCapacity(e.options.Config.Capacity))
}

func (e *Editor) handleResetCmd(cmd []string) tea.Cmd {
	if !e.checkArgs(cmd, 0, 0) {
		return nil
	}
	if e.doc.Dirty() && !forced(cmd) {
		e.cmdLine.SetMessage(NO_WRITE_SINCE_LAST_CHANGE)
		return nil
	}
	e.cmdLine.SetMessage("Reloading...")
	return reloadCmd(e.doc.Path())
}

func (e *Editor) handleClearCmd(cmd []string) tea.Cmd {
	if !e.checkArgs(cmd, 0, 0) {
		return nil
	}
	e.doc.Clear()
	e.cmdLine.SetMessage("History cleared")
	return nil
}

func (e *Editor) handleSnapshotCmd(cmd []string) tea.Cmd {
	if !e.checkArgs(cmd, 1, 1) {
		return nil
	}
	path, err := expand(cmd[1])
	if err != nil {
		e.cmdLine.SetMessage(fmt.Sprintf("Error: %s", err))
		return nil
	}
	// The snapshot is taken now, writing happens in the background
	return saveSnapshotCmd(path, snapshot.FromStore(e.doc.History()))
}

func (e *Editor) handleRestoreCmd(cmd []string) tea.Cmd {
	if !e.checkArgs(cmd, 1, 1) {
		return nil
	}
	path, err := expand(cmd[1])
	if err != nil {
		e.cmdLine.SetMessage(fmt.Sprintf("Error: %s", err))
		return nil
	}
	return restoreSnapshotCmd(path)
}

func (e *Editor) handleYankCmd(cmd []string) tea.Cmd {
	if !e.checkArgs(cmd, 0, 0) {
		return nil
	}
	delay := e.options.Config.ClipboardClearDelay
	yankCmd, err := copyToClipboard(e.doc.Text(), delay, e.yankID+1)
	if err != nil {
		e.options.Logger.Warn("Failed to copy to clipboard", zap.Error(err))
		e.cmdLine.SetMessage(err.Error())
		return nil
	}
	e.yankID++
	e.yankPending = delay > 0
	return yankCmd
}

// clipboardNeedsClear reports whether the clipboard still holds text yanked
// from this editor that is due to be cleared
func (e Editor) clipboardNeedsClear() bool {
	return e.yankPending && e.options.Config.ClipboardClearDelay > 0
}

func (e Editor) statusLine() string {
	name := e.doc.Path()
	if e.doc.Dirty() {
		name += " [+]"
	}
	h := e.doc.History()
	position := fmt.Sprintf("%d/%d  undo %d  redo %d", h.Cursor()+1, h.Len(), h.UndoDepth(), h.RedoDepth())
	gap := util.Max(e.windowWidth-lipgloss.Width(name)-lipgloss.Width(position), 1)
	return statusStyle.Render(name + strings.Repeat(" ", gap) + position)
}

func (e Editor) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, e.textarea.View(), e.statusLine(), e.cmdLine.View())
}
