package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// initClipboard initializes the system clipboard on first use. Without a
// clipboard (e.g. no display server) every later call returns the same error.
func initClipboard() error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	return clipboardErr
}

// copyToClipboard writes value to the clipboard. Unless clearClipboardDelay is 0,
// the returned command clears it again after that many seconds, provided the
// clipboard still holds value. id identifies this yank in the resulting messages.
func copyToClipboard(value string, clearClipboardDelay int, id int) (tea.Cmd, error) {
	if err := initClipboard(); err != nil {
		return nil, fmt.Errorf("Clipboard unavailable: %w", err)
	}
	notifyChangeChan := clipboard.Write(clipboard.FmtText, []byte(value))

	commandLineMsg := "Copied to clipboard."
	var clearClipboardCmd tea.Cmd = nil
	if clearClipboardDelay > 0 {
		commandLineMsg += fmt.Sprintf(" (Clearing in %d seconds)", clearClipboardDelay)
		clearClipboardCmd = scheduleClearClipboard(clearClipboardDelay, id, notifyChangeChan)
	}
	setMsgCmd := func() tea.Msg {
		return setCommandLineMessageMsg{commandLineMsg}
	}
	return tea.Batch(setMsgCmd, clearClipboardCmd), nil
}

func clearClipboard() {
	if initClipboard() != nil {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(""))
}
