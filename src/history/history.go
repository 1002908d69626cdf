package history

import (
	"github.com/Zaphoood/histedit/src/util"
)

const DefaultCapacity = 50

// Store is a bounded, linear undo/redo history of values of type T.
// entries[cursor] is always the current value and entries is never empty.
// A Store is not safe for concurrent use; it belongs to the editor that created it.
type Store[T any] struct {
	entries []T
	// cursor is an index into entries which points at the current value
	cursor   int
	capacity int

	observer Observer[T]
	// Set while undo/redo re-point the cursor. Recording calls made in the meantime are dropped.
	replaying bool
}

type options struct {
	capacity int
}

type Option func(*options)

// WithCapacity sets the maximum number of retained entries, including the current one.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

func buildOptions(opts []Option) (options, error) {
	o := options{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity <= 0 {
		return o, ConfigurationError{Capacity: o.capacity}
	}
	return o, nil
}

func New[T any](initial T, opts ...Option) (*Store[T], error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Store[T]{
		entries:  []T{initial},
		cursor:   0,
		capacity: o.capacity,
	}, nil
}

// Restore rebuilds a store from a previously recorded sequence of entries.
// If there are more entries than the capacity allows, the oldest ones are
// dropped and the cursor moves along with the remaining entries.
func Restore[T any](entries []T, cursor int, opts ...Option) (*Store[T], error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if cursor < 0 || cursor >= len(entries) {
		return nil, InvalidCursorError{Cursor: cursor, Len: len(entries)}
	}
	excess := util.Max(len(entries)-o.capacity, 0)
	kept := make([]T, len(entries)-excess)
	copy(kept, entries[excess:])
	return &Store[T]{
		entries:  kept,
		cursor:   util.Max(cursor-excess, 0),
		capacity: o.capacity,
	}, nil
}

// SetObserver installs o to be notified of successful undo and redo calls.
// Passing nil removes the current observer.
func (s *Store[T]) SetObserver(o Observer[T]) {
	s.observer = o
}

// SetState records next as a new entry and makes it current.
func (s *Store[T]) SetState(next T) {
	s.record(next)
}

// Update records the result of fn applied to the current value.
// If fn panics the store is left untouched.
func (s *Store[T]) Update(fn func(prev T) T) {
	next := fn(s.Current())
	s.record(next)
}

// TryUpdate is like Update, but fn may fail. Its error is returned as is and
// nothing is recorded.
func (s *Store[T]) TryUpdate(fn func(prev T) (T, error)) error {
	next, err := fn(s.Current())
	if err != nil {
		return err
	}
	s.record(next)
	return nil
}

func (s *Store[T]) record(next T) {
	if s.replaying {
		return
	}
	s.truncate(s.cursor + 1)
	s.entries = append(s.entries, next)
	if excess := len(s.entries) - s.capacity; excess > 0 {
		s.evict(excess)
	}
	s.cursor = len(s.entries) - 1
}

// truncate drops all entries from index n on. Dropped slots are zeroed so
// that the backing array doesn't keep them alive.
func (s *Store[T]) truncate(n int) {
	var zero T
	for i := n; i < len(s.entries); i++ {
		s.entries[i] = zero
	}
	s.entries = s.entries[:n]
}

// evict removes the n oldest entries.
func (s *Store[T]) evict(n int) {
	remaining := copy(s.entries, s.entries[n:])
	s.truncate(remaining)
}

// Undo moves back by one entry. It returns false without doing anything if
// the current entry is already the oldest one.
func (s *Store[T]) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	s.cursor--
	if s.observer != nil {
		s.notify(s.observer.OnUndo)
	}
	return true
}

// Redo moves forward by one entry. It returns false without doing anything if
// there is nothing to redo.
func (s *Store[T]) Redo() bool {
	if !s.CanRedo() {
		return false
	}
	s.cursor++
	if s.observer != nil {
		s.notify(s.observer.OnRedo)
	}
	return true
}

// notify runs the observer callback in replay mode, so that a value echoed back
// into the store from within the callback is not recorded as a new edit.
func (s *Store[T]) notify(callback func(T)) {
	s.replaying = true
	defer func() { s.replaying = false }()
	callback(s.Current())
}

// Clear forgets all history but keeps the current value.
func (s *Store[T]) Clear() {
	current := s.Current()
	s.truncate(0)
	s.entries = append(s.entries, current)
	s.cursor = 0
}

// Reset replaces the current value and forgets all history.
func (s *Store[T]) Reset(initial T) {
	s.truncate(0)
	s.entries = append(s.entries, initial)
	s.cursor = 0
}

func (s *Store[T]) Current() T {
	return s.entries[s.cursor]
}

func (s *Store[T]) CanUndo() bool {
	return s.cursor > 0
}

func (s *Store[T]) CanRedo() bool {
	return s.cursor < len(s.entries)-1
}

// Entries returns a copy of all recorded entries, oldest first.
func (s *Store[T]) Entries() []T {
	entries := make([]T, len(s.entries))
	copy(entries, s.entries)
	return entries
}

func (s *Store[T]) Cursor() int {
	return s.cursor
}

func (s *Store[T]) Len() int {
	return len(s.entries)
}

func (s *Store[T]) Capacity() int {
	return s.capacity
}

// UndoDepth is the number of entries older than the current one.
func (s *Store[T]) UndoDepth() int {
	return s.cursor
}

// RedoDepth is the number of entries newer than the current one.
func (s *Store[T]) RedoDepth() int {
	return len(s.entries) - 1 - s.cursor
}
