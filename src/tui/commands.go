package tui

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Zaphoood/histedit/src/document"
	"github.com/Zaphoood/histedit/src/history"
	"github.com/Zaphoood/histedit/src/snapshot"
	tea "github.com/charmbracelet/bubbletea"
)

func fileSelectedCmd(path string, opts ...history.Option) tea.Cmd {
	return func() tea.Msg {
		if len(path) == 0 {
			return loadFailedMsg{errors.New("Empty path")}
		}
		// Expand file path
		pathExpanded, err := expand(path)
		if err != nil {
			return loadFailedMsg{err}
		}
		if fileInfo, err := os.Stat(pathExpanded); err == nil && fileInfo.IsDir() {
			return loadFailedMsg{fmt.Errorf("'%s' is directory", path)}
		}
		doc, err := document.Open(pathExpanded, opts...)
		if err != nil {
			return loadFailedMsg{err}
		}
		return loadDoneMsg{doc}
	}
}

type loadDoneMsg struct {
	doc *document.Document
}

type loadFailedMsg struct {
	err error
}

// saveToPathCmd writes text to path in the background. The document itself is
// only touched once saveDoneMsg arrives in Update.
func saveToPathCmd(path, text string, andThen tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		if err := document.WriteFile(path, text); err != nil {
			return saveFailedMsg{err}
		}
		return saveDoneMsg{path, text, andThen}
	}
}

type saveDoneMsg struct {
	path string
	text string
	// Should be executed after saving
	andThen tea.Cmd
}

type saveFailedMsg struct {
	err error
}

func reloadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := document.ReadFile(path)
		if err != nil {
			return loadFailedMsg{err}
		}
		return reloadDoneMsg{text}
	}
}

type reloadDoneMsg struct {
	text string
}

func saveSnapshotCmd(path string, s snapshot.Snapshot) tea.Cmd {
	return func() tea.Msg {
		if err := snapshot.SaveFile(path, s); err != nil {
			return snapshotFailedMsg{err}
		}
		return snapshotSavedMsg{path, len(s.Entries)}
	}
}

type snapshotSavedMsg struct {
	path    string
	entries int
}

type snapshotFailedMsg struct {
	err error
}

func restoreSnapshotCmd(path string) tea.Cmd {
	return func() tea.Msg {
		s, err := snapshot.LoadFile(path)
		if err != nil {
			return snapshotFailedMsg{err}
		}
		h, err := s.Store()
		if err != nil {
			return snapshotFailedMsg{err}
		}
		return snapshotRestoredMsg{path, h}
	}
}

type snapshotRestoredMsg struct {
	path    string
	history *history.Store[string]
}

// scheduleClearClipboard waits for the clear delay of yank id to run out, or
// for notify to report that someone else has written to the clipboard.
func scheduleClearClipboard(delay int, id int, notify <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-notify:
			return clipboardChangedMsg{id}
		case <-time.After(time.Duration(delay) * time.Second):
			return clearClipboardMsg{id}
		}
	}
}

type clearClipboardMsg struct {
	id int
}

type clipboardChangedMsg struct {
	id int
}

type clearClipboardAndQuitMsg struct{}

func quitCmd() tea.Msg {
	return clearClipboardAndQuitMsg{}
}

/* When any model receives a tea.WindowSizeMsg, it should emit this command
in order to alert the main model of the resize. The main model will store the new
window size and pass it to other models upon initialization */
func globalResizeCmd(width, height int) tea.Cmd {
	return func() tea.Msg {
		return globalResizeMsg{width, height}
	}
}

type globalResizeMsg struct {
	width  int
	height int
}

type setCommandLineMessageMsg struct {
	msg string
}
