package history

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore[T any](t *testing.T, initial T, opts ...Option) *Store[T] {
	s, err := New(initial, opts...)
	require.NoError(t, err)
	return s
}

func assertEntries[T any](t *testing.T, expected []T, s *Store[T]) {
	t.Helper()
	if diff := cmp.Diff(expected, s.Entries()); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialState(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, "x")
	assert.Equal("x", s.Current())
	assert.False(s.CanUndo())
	assert.False(s.CanRedo())
	assert.Equal(DefaultCapacity, s.Capacity())
	assertEntries(t, []string{"x"}, s)
}

func TestInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		s, err := New(0, WithCapacity(capacity))
		assert.Nil(t, s)
		var configErr ConfigurationError
		if assert.True(t, errors.As(err, &configErr)) {
			assert.Equal(t, capacity, configErr.Capacity)
		}
	}
}

func TestLinearRecording(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, 0)
	s.SetState(1)
	s.SetState(2)
	s.SetState(3)

	assert.Equal(3, s.Current())
	assert.True(s.CanUndo())
	assert.False(s.CanRedo())

	for _, expected := range []int{2, 1, 0} {
		assert.True(s.Undo())
		assert.Equal(expected, s.Current())
	}
	assert.False(s.Undo())
	assert.Equal(0, s.Current())
	assertEntries(t, []int{0, 1, 2, 3}, s)
}

func TestBranchingEditDiscardsRedo(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, 0)
	s.SetState(1)
	s.SetState(2)
	s.SetState(3)
	s.Undo()
	s.Undo()
	assert.Equal(1, s.Current())

	assert.True(s.Redo())
	assert.Equal(2, s.Current())
	assert.True(s.CanRedo())

	s.SetState(99)
	assert.False(s.CanRedo())
	assert.False(s.Redo())
	assert.Equal(99, s.Current())
	assertEntries(t, []int{0, 1, 2, 99}, s)
}

func TestCapacityEviction(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, 0, WithCapacity(3))
	for i := 1; i <= 4; i++ {
		s.SetState(i)
	}
	assert.Equal(3, s.Len())
	assert.Equal(4, s.Current())
	assertEntries(t, []int{2, 3, 4}, s)

	for _, expected := range []int{3, 2} {
		assert.True(s.Undo())
		assert.Equal(expected, s.Current())
	}
	assert.False(s.Undo())
	assert.Equal(2, s.Current())
}

func TestBranchingEditAtCapacity(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, 0, WithCapacity(3))
	s.SetState(1)
	s.SetState(2)
	s.Undo()
	s.Undo()

	// Truncation makes room, so nothing is evicted
	s.SetState(10)
	assertEntries(t, []int{0, 10}, s)
	assert.Equal(1, s.Cursor())

	s.SetState(11)
	s.SetState(12)
	assertEntries(t, []int{10, 11, 12}, s)
	assert.Equal(2, s.Cursor())
}

func TestCapacityOne(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, "a", WithCapacity(1))
	s.SetState("b")
	assert.Equal("b", s.Current())
	assert.False(s.CanUndo())
	assert.False(s.CanRedo())
	assertEntries(t, []string{"b"}, s)
}

func TestClear(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, 0)
	for i := 1; i <= 5; i++ {
		s.SetState(i)
	}
	s.Undo()
	s.Redo()
	s.Clear()

	assert.False(s.CanUndo())
	assert.False(s.CanRedo())
	assert.Equal(5, s.Current())
	assert.False(s.Undo())
	assert.Equal(5, s.Current())
	assertEntries(t, []int{5}, s)
}

func TestClearMidHistory(t *testing.T) {
	s := newStore(t, 0)
	s.SetState(1)
	s.SetState(2)
	s.Undo()
	s.Clear()

	assert.Equal(t, 1, s.Current())
	assertEntries(t, []int{1}, s)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, 0)
	s.SetState(1)
	s.SetState(2)
	s.Undo()
	s.Reset(100)

	assert.Equal(100, s.Current())
	assert.Equal(0, s.Cursor())
	assert.False(s.CanUndo())
	assert.False(s.CanRedo())
	assertEntries(t, []int{100}, s)
}

func TestUpdate(t *testing.T) {
	s := newStore(t, 1)
	s.Update(func(prev int) int { return prev * 10 })
	s.Update(func(prev int) int { return prev + 1 })

	assert.Equal(t, 11, s.Current())
	assertEntries(t, []int{1, 10, 11}, s)
}

func TestUpdatePanicLeavesStateUnchanged(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, 0)
	s.SetState(1)
	s.SetState(2)
	s.Undo()

	assert.PanicsWithValue("x", func() {
		s.Update(func(prev int) int { panic("x") })
	})
	assert.Equal(1, s.Current())
	assert.Equal(1, s.Cursor())
	assert.True(s.CanRedo())
	assertEntries(t, []int{0, 1, 2}, s)
}

func TestTryUpdateErrorLeavesStateUnchanged(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, 0)
	s.SetState(1)
	s.SetState(2)
	s.Undo()

	sentinel := errors.New("x")
	err := s.TryUpdate(func(prev int) (int, error) { return 0, sentinel })
	assert.Same(sentinel, err)
	assert.Equal(1, s.Current())
	assert.Equal(1, s.Cursor())
	assertEntries(t, []int{0, 1, 2}, s)

	assert.NoError(s.TryUpdate(func(prev int) (int, error) { return prev + 41, nil }))
	assert.Equal(42, s.Current())
	assertEntries(t, []int{0, 1, 42}, s)
}

func TestEntriesIsCopy(t *testing.T) {
	s := newStore(t, 0)
	s.SetState(1)

	entries := s.Entries()
	entries[0] = 100

	assertEntries(t, []int{0, 1}, s)
}

type recordingObserver struct {
	undone []string
	redone []string
}

func (o *recordingObserver) OnUndo(current string) { o.undone = append(o.undone, current) }
func (o *recordingObserver) OnRedo(current string) { o.redone = append(o.redone, current) }

func TestObserver(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, "a")
	o := &recordingObserver{}
	s.SetObserver(o)

	s.SetState("b")
	s.SetState("c")
	s.Undo()
	s.Undo()
	// No-ops must not notify
	s.Undo()
	s.Redo()

	assert.Equal([]string{"b", "a"}, o.undone)
	assert.Equal([]string{"b"}, o.redone)

	s.Redo()
	s.Redo()
	assert.Equal([]string{"b", "c"}, o.redone)

	s.SetObserver(nil)
	s.Undo()
	assert.Len(o.undone, 2)
}

func TestSetStateDuringReplayIsNotRecorded(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, "a")
	echo := func(current string) { s.SetState(current) }
	s.SetObserver(ObserverFuncs[string]{Undo: echo, Redo: echo})

	s.SetState("b")
	s.SetState("c")
	s.Undo()

	assert.Equal("b", s.Current())
	assert.True(s.CanRedo())
	assertEntries(t, []string{"a", "b", "c"}, s)

	s.Redo()
	assert.Equal("c", s.Current())
	assertEntries(t, []string{"a", "b", "c"}, s)

	// Recording works again once the replay has finished
	s.SetState("d")
	assertEntries(t, []string{"a", "b", "c", "d"}, s)
}

func TestObserverPanicPropagates(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, "a")
	s.SetState("b")
	s.SetObserver(ObserverFuncs[string]{Undo: func(string) { panic("observer") }})

	assert.PanicsWithValue("observer", func() { s.Undo() })
	assert.Equal("a", s.Current())

	// The replay flag must not be left set after the panic
	s.SetState("c")
	assertEntries(t, []string{"a", "c"}, s)
}

func TestObserverFuncsNilFields(t *testing.T) {
	s := newStore(t, 0)
	s.SetState(1)
	s.SetObserver(ObserverFuncs[int]{})

	assert.NotPanics(t, func() {
		s.Undo()
		s.Redo()
	})
}

func TestDepth(t *testing.T) {
	assert := assert.New(t)

	s := newStore(t, 0)
	s.SetState(1)
	s.SetState(2)
	s.Undo()

	assert.Equal(1, s.UndoDepth())
	assert.Equal(1, s.RedoDepth())
}

func TestRestore(t *testing.T) {
	assert := assert.New(t)

	s, err := Restore([]string{"a", "b", "c"}, 1)
	require.NoError(t, err)
	assert.Equal("b", s.Current())
	assert.True(s.CanUndo())
	assert.True(s.CanRedo())

	s.SetState("x")
	assertEntries(t, []string{"a", "b", "x"}, s)
}

func TestRestoreOverCapacity(t *testing.T) {
	assert := assert.New(t)

	entries := []int{0, 1, 2, 3, 4}
	s, err := Restore(entries, 3, WithCapacity(3))
	require.NoError(t, err)
	assertEntries(t, []int{2, 3, 4}, s)
	assert.Equal(3, s.Current())
	assert.Equal(1, s.Cursor())

	// A cursor on an evicted entry ends up on the oldest kept one
	s, err = Restore(entries, 0, WithCapacity(3))
	require.NoError(t, err)
	assert.Equal(2, s.Current())
	assert.Equal(0, s.Cursor())

	// The input slice is not shared with the store
	s.SetState(7)
	assert.Equal([]int{0, 1, 2, 3, 4}, entries)
}

func TestRestoreInvalid(t *testing.T) {
	var cursorErr InvalidCursorError

	_, err := Restore([]int{}, 0)
	assert.True(t, errors.As(err, &cursorErr))

	_, err = Restore([]int{1, 2}, 2)
	assert.True(t, errors.As(err, &cursorErr))

	_, err = Restore([]int{1, 2}, -1)
	assert.True(t, errors.As(err, &cursorErr))

	var configErr ConfigurationError
	_, err = Restore([]int{1}, 0, WithCapacity(0))
	assert.True(t, errors.As(err, &configErr))
}
