package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Zaphoood/histedit/src/history"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func updateMain(t *testing.T, m MainModel, msg tea.Msg) (MainModel, tea.Cmd) {
	model, cmd := m.Update(msg)
	main, ok := model.(MainModel)
	if !ok {
		t.Fatal("Could not assert that model is of type MainModel after Update()")
	}
	return main, cmd
}

func TestMainModelOpensPathFromArgs(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	m := NewMainModel(path, Options{})
	m, _ = updateMain(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	cmd := m.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	assert.IsType(loadDoneMsg{}, msg)
	m, _ = updateMain(t, m, msg)
	assert.Equal(editorView, m.view)

	editor, ok := m.editor.(Editor)
	require.True(t, ok)
	assert.Equal("hello", editor.doc.Text())
	assert.Equal(80, editor.windowWidth)
}

func TestMainModelWithoutPath(t *testing.T) {
	m := NewMainModel("", Options{})
	assert.Nil(t, m.Init())
	assert.Equal(t, selectFileView, m.view)
	assert.Contains(t, m.View(), "Select file")
}

func TestFileSelectorOpensNewFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "new.txt")
	m := NewMainModel("", Options{})
	for _, r := range path {
		m, _ = updateMain(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := updateMain(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// The selector's command may be batched by the main model
	var loaded *loadDoneMsg
	msgs := []tea.Msg{cmd()}
	if batch, ok := msgs[0].(tea.BatchMsg); ok {
		msgs = nil
		for _, c := range batch {
			if c != nil {
				msgs = append(msgs, c())
			}
		}
	}
	for _, msg := range msgs {
		if done, ok := msg.(loadDoneMsg); ok {
			loaded = &done
		}
	}
	if assert.NotNil(loaded) {
		assert.Equal(path, loaded.doc.Path())
		assert.Equal("", loaded.doc.Text())
	}
}

func TestFileSelectorRejectsDirectory(t *testing.T) {
	msg := fileSelectedCmd(t.TempDir())()
	assert.IsType(t, loadFailedMsg{}, msg)

	msg = fileSelectedCmd("")()
	assert.IsType(t, loadFailedMsg{}, msg)
}

func TestFileSelectorShowsLoadError(t *testing.T) {
	m := NewFileSelector(history.DefaultCapacity)
	model, _ := m.Update(loadFailedMsg{assert.AnError})
	assert.Contains(t, model.View(), assert.AnError.Error())
}

func TestCompletePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "beta.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "alps"), 0o755))

	completions, err := completePath(filepath.Join(dir, "al"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha.txt", "alps/"}, completions)

	completions, err = completePath(dir + "/")
	require.NoError(t, err)
	assert.Len(t, completions, 3)
}

func TestFileSelectorCyclesCompletions(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a1.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a2.txt"), nil, 0o644))

	m := NewFileSelector(history.DefaultCapacity)
	m.input.SetValue(filepath.Join(dir, "a"))

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(FileSelector)
	assert.Equal(filepath.Join(dir, "a1.txt"), m.input.Value())

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(FileSelector)
	assert.Equal(filepath.Join(dir, "a2.txt"), m.input.Value())

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = model.(FileSelector)
	assert.Equal(filepath.Join(dir, "a1.txt"), m.input.Value())
}

func TestJoinRetainTrailingSep(t *testing.T) {
	assert.Equal(t, "foo/bar/", joinRetainTrailingSep("foo", "bar/"))
	assert.Equal(t, "foo/bar", joinRetainTrailingSep("foo", "bar"))
	assert.Equal(t, "", joinRetainTrailingSep())
}

func TestExpand(t *testing.T) {
	expanded, err := expand("plain/path")
	require.NoError(t, err)
	assert.Equal(t, "plain/path", expanded)

	_, err = expand("~someone/file")
	assert.Error(t, err)
}

func TestDescribeTarget(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("abc"), 0o644))

	assert.Equal(t, "", describeTarget(""))
	assert.Equal(t, "New file", describeTarget(filepath.Join(dir, "missing.txt")))
	assert.Equal(t, "Directory", describeTarget(dir))
	assert.Equal(t, "Existing file, 3 bytes", describeTarget(file))
}

func TestFileSelectorShowsTarget(t *testing.T) {
	m := NewFileSelector(7)
	assert.Contains(t, m.View(), "History: up to 7 changes")

	path := filepath.Join(t.TempDir(), "n")
	m.input.SetValue(path[:len(path)-1])
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Contains(t, model.View(), "New file")
}
