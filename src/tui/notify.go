package tui

import (
	"fmt"

	"github.com/Zaphoood/histedit/src/history"
)

const (
	AT_OLDEST_CHANGE = "Already at oldest change"
	AT_NEWEST_CHANGE = "Already at newest change"
)

// historyNotifier turns successful undo and redo calls into a message for the command line
type historyNotifier struct {
	history *history.Store[string]
	message string
}

func newHistoryNotifier(h *history.Store[string]) *historyNotifier {
	n := &historyNotifier{history: h}
	h.SetObserver(n)
	return n
}

func (n *historyNotifier) OnUndo(string) {
	n.message = fmt.Sprintf("Undo: %s", pluralize(n.history.UndoDepth(), "older change", "older changes"))
}

func (n *historyNotifier) OnRedo(string) {
	n.message = fmt.Sprintf("Redo: %s", pluralize(n.history.RedoDepth(), "newer change", "newer changes"))
}

// take returns the pending message and resets it
func (n *historyNotifier) take() string {
	msg := n.message
	n.message = ""
	return msg
}
