package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zaphoood/histedit/src/history"
	"github.com/Zaphoood/histedit/src/util"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

/* Inital model where you enter the path to the file to edit. Below the input it
tells whether the path names an existing file or a new one, and how much
history the editor will keep for it */

type FileSelector struct {
	input    textinput.Model
	err      error
	// What the current input points at, see describeTarget
	target   string
	// History capacity of the document once a file is selected
	capacity int

	completionBase     string
	completions        []string
	completionIndex    int
	cyclingCompletions bool

	windowWidth  int
	windowHeight int
}

func NewFileSelector(capacity int) FileSelector {
	m := FileSelector{input: textinput.New(), capacity: capacity}

	m.input.Width = 32
	m.input.Placeholder = "File"
	m.input.Focus()

	return m
}

func (m FileSelector) Init() tea.Cmd {
	return nil
}

func (m FileSelector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case loadFailedMsg:
		m.err = msg.err
		return m, nil
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, globalResizeCmd(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.cyclingCompletions {
				m.cycleCompletion(1)
			} else {
				m.cyclingCompletions = true
				err := m.loadCompletions()
				if err != nil {
					m.err = err
				}
				m.cycleCompletion(0)
			}
			m.target = describeTarget(m.input.Value())
			return m, nil
		case "shift+tab":
			if m.cyclingCompletions && len(m.completions) > 0 {
				m.cycleCompletion(-1)
			}
			m.target = describeTarget(m.input.Value())
			return m, nil
		case "enter":
			return m, fileSelectedCmd(m.input.Value(), history.WithCapacity(m.capacity))
		}
	}
	oldValue := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != oldValue {
		m.cyclingCompletions = false
		m.target = describeTarget(m.input.Value())
	}

	return m, cmd
}

// describeTarget returns a short note on what opening path would do
func describeTarget(path string) string {
	if len(path) == 0 {
		return ""
	}
	expanded, err := expand(path)
	if err != nil {
		return ""
	}
	info, err := os.Stat(expanded)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "New file"
	case err != nil:
		return ""
	case info.IsDir():
		return "Directory"
	default:
		return fmt.Sprintf("Existing file, %s", pluralize(int(info.Size()), "byte", "bytes"))
	}
}

func (m *FileSelector) loadCompletions() error {
	input := m.input.Value()
	var err error
	m.completionIndex = 0
	m.completions, err = completePath(input)
	if err != nil {
		return err
	}
	if input == "~" {
		input = "~/"
	}
	if strings.HasSuffix(input, string(filepath.Separator)) {
		m.completionBase = input
	} else {
		m.completionBase = filepath.Dir(input)
	}
	return nil
}

func (m *FileSelector) cycleCompletion(n int) {
	if !(n == 1 || n == 0 || n == -1) {
		panic(fmt.Sprintf("Cannot cycle completions by %d steps", n))
	}
	switch len(m.completions) {
	case 0:
		return
	case 1:
		m.cyclingCompletions = false
		fallthrough
	default:
		m.completionIndex = util.Mod(m.completionIndex+n, len(m.completions))
		m.input.SetValue(joinRetainTrailingSep(m.completionBase, m.completions[m.completionIndex]))
		m.input.SetCursor(len(m.input.Value()))
	}
}

func (m FileSelector) viewError() string {
	if m.err != nil {
		return fmt.Sprintf("\n%s\n", m.err)
	}
	return ""
}

func (m FileSelector) View() string {
	var builder strings.Builder
	builder.WriteString("Select file:\n\n")
	builder.WriteString(m.input.View())
	builder.WriteRune('\n')
	if len(m.target) > 0 {
		builder.WriteString(statusStyle.Render(m.target))
		builder.WriteRune('\n')
	}
	builder.WriteString(fmt.Sprintf("History: up to %s\n", pluralize(m.capacity, "change", "changes")))
	builder.WriteString(m.viewError())
	builder.WriteString("\n(Press 'Ctrl-c' to quit)")

	return centerInWindow(boxStyle.Render(builder.String()), m.windowWidth, m.windowHeight)
}
