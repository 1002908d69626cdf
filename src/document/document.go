package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Zaphoood/histedit/src/history"
	"golang.org/x/crypto/blake2b"
)

// Document is an editing session over a single text file. Every change of the
// text is recorded in a history.Store, so it can be undone and redone.
type Document struct {
	path    string
	history *history.Store[string]
	// Digest of the text as it was last loaded from or written to disk
	savedDigest [blake2b.Size256]byte
}

// Open reads the file at path. A file which doesn't exist yet results in an
// empty document that will be created on the first save.
func Open(path string, opts ...history.Option) (*Document, error) {
	text, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	h, err := history.New(text, opts...)
	if err != nil {
		return nil, err
	}
	return &Document{
		path:        path,
		history:     h,
		savedDigest: digest(text),
	}, nil
}

// ReadFile returns the content of the file at path, or an empty string if it doesn't exist.
func ReadFile(path string) (string, error) {
	if len(path) == 0 {
		return "", errors.New("Empty path")
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("Failed to read '%s': %w", path, err)
	}
	return string(content), nil
}

func digest(text string) [blake2b.Size256]byte {
	return blake2b.Sum256([]byte(text))
}

// Edit records text as a new history entry. Nothing is recorded if text equals
// the current text, in which case false is returned.
func (d *Document) Edit(text string) bool {
	if text == d.history.Current() {
		return false
	}
	d.history.SetState(text)
	return true
}

func (d *Document) Text() string {
	return d.history.Current()
}

func (d *Document) Undo() bool {
	return d.history.Undo()
}

func (d *Document) Redo() bool {
	return d.history.Redo()
}

func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

// Clear forgets the edit history while keeping the current text.
func (d *Document) Clear() {
	d.history.Clear()
}

// Reset replaces the text and forgets the edit history.
func (d *Document) Reset(text string) {
	d.history.Reset(text)
}

// Load replaces the text with text freshly read from disk, discarding the
// history and all unsaved changes.
func (d *Document) Load(text string) {
	d.history.Reset(text)
	d.savedDigest = digest(text)
}

// Restore replaces the history, e.g. with one loaded from a snapshot. The saved
// state is kept, so the document is dirty unless the restored text matches it.
func (d *Document) Restore(h *history.Store[string]) {
	d.history = h
}

func (d *Document) History() *history.Store[string] {
	return d.history
}

func (d *Document) Path() string {
	return d.path
}

// Dirty reports whether the current text differs from what was last loaded or saved.
func (d *Document) Dirty() bool {
	return digest(d.Text()) != d.savedDigest
}

func (d *Document) Save() error {
	return d.SaveAs(d.path)
}

// SaveAs writes the current text to path, which becomes the document's path.
func (d *Document) SaveAs(path string) error {
	text := d.Text()
	if err := WriteFile(path, text); err != nil {
		return err
	}
	d.MarkSaved(path, text)
	return nil
}

// MarkSaved records that text has been written to path. This is used when
// writing happens outside of the document, e.g. in the background.
func (d *Document) MarkSaved(path, text string) {
	d.path = path
	d.savedDigest = digest(text)
}

func WriteFile(path, text string) error {
	if len(path) == 0 {
		return errors.New("Empty path")
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("Failed to write '%s': %w", path, err)
	}
	return nil
}
