package history

// Observer is notified after every successful Undo or Redo with the value that
// became current. It is never called for no-op calls.
//
// Callbacks run synchronously on the caller's goroutine. A panic in a callback
// propagates to the caller of Undo/Redo; the cursor has already moved by then.
type Observer[T any] interface {
	OnUndo(current T)
	OnRedo(current T)
}

// ObserverFuncs adapts plain functions to the Observer interface. Nil fields are skipped.
type ObserverFuncs[T any] struct {
	Undo func(current T)
	Redo func(current T)
}

func (o ObserverFuncs[T]) OnUndo(current T) {
	if o.Undo != nil {
		o.Undo(current)
	}
}

func (o ObserverFuncs[T]) OnRedo(current T) {
	if o.Redo != nil {
		o.Redo(current)
	}
}
