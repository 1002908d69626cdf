package snapshot

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/Zaphoood/histedit/src/history"
	"github.com/antchfx/xmlquery"
)

/* A snapshot is the complete edit history of a document, persisted as XML:

<history capacity="50" cursor="1">
  <entry>first</entry>
  <entry>second</entry>
  <entry encoding="base64">Zm9ybQxmZWVk</entry>
</history>

Entries that XML 1.0 cannot carry verbatim (control characters, invalid UTF-8)
are stored base64 encoded. */

const ENCODING_BASE64 = "base64"

type Snapshot struct {
	Capacity int
	Cursor   int
	Entries  []string
}

type xmlHistory struct {
	XMLName  xml.Name   `xml:"history"`
	Capacity int        `xml:"capacity,attr"`
	Cursor   int        `xml:"cursor,attr"`
	Entries  []xmlEntry `xml:"entry"`
}

type xmlEntry struct {
	Encoding string `xml:"encoding,attr,omitempty"`
	Text     string `xml:",chardata"`
}

func encodeEntry(text string) xmlEntry {
	if isXMLText(text) {
		return xmlEntry{Text: text}
	}
	return xmlEntry{Encoding: ENCODING_BASE64, Text: base64.StdEncoding.EncodeToString([]byte(text))}
}

func decodeEntry(index int, node *xmlquery.Node) (string, error) {
	switch encoding := node.SelectAttr("encoding"); encoding {
	case "":
		return node.InnerText(), nil
	case ENCODING_BASE64:
		raw, err := base64.StdEncoding.DecodeString(node.InnerText())
		if err != nil {
			return "", FormatError{fmt.Sprintf("entry %d is not valid base64: %s", index, err)}
		}
		return string(raw), nil
	default:
		return "", FormatError{fmt.Sprintf("entry %d has unknown encoding '%s'", index, encoding)}
	}
}

// isXMLText reports whether text survives an XML round trip unchanged
func isXMLText(text string) bool {
	if !utf8.ValidString(text) {
		return false
	}
	for _, r := range text {
		if !isXMLChar(r) {
			return false
		}
	}
	return true
}

// See the Char production of the XML 1.0 specification
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

type FormatError struct {
	Reason string
}

func (e FormatError) Error() string {
	return "Invalid snapshot: " + e.Reason
}

func FromStore(s *history.Store[string]) Snapshot {
	return Snapshot{
		Capacity: s.Capacity(),
		Cursor:   s.Cursor(),
		Entries:  s.Entries(),
	}
}

// Store rebuilds the history described by the snapshot.
func (s Snapshot) Store() (*history.Store[string], error) {
	return history.Restore(s.Entries, s.Cursor, history.WithCapacity(s.Capacity))
}

func Write(w io.Writer, s Snapshot) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	entries := make([]xmlEntry, 0, len(s.Entries))
	for _, text := range s.Entries {
		entries = append(entries, encodeEntry(text))
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	err := encoder.Encode(xmlHistory{
		Capacity: s.Capacity,
		Cursor:   s.Cursor,
		Entries:  entries,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func Read(r io.Reader) (Snapshot, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return Snapshot{}, FormatError{err.Error()}
	}
	root := xmlquery.FindOne(doc, "/history")
	if root == nil {
		return Snapshot{}, FormatError{"missing <history> element"}
	}
	capacity, err := intAttr(root, "capacity")
	if err != nil {
		return Snapshot{}, err
	}
	cursor, err := intAttr(root, "cursor")
	if err != nil {
		return Snapshot{}, err
	}
	nodes := xmlquery.Find(root, "entry")
	entries := make([]string, 0, len(nodes))
	for i, node := range nodes {
		text, err := decodeEntry(i, node)
		if err != nil {
			return Snapshot{}, err
		}
		entries = append(entries, text)
	}
	return Snapshot{Capacity: capacity, Cursor: cursor, Entries: entries}, nil
}

func intAttr(node *xmlquery.Node, name string) (int, error) {
	raw := node.SelectAttr(name)
	if len(raw) == 0 {
		return 0, FormatError{fmt.Sprintf("missing attribute '%s'", name)}
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, FormatError{fmt.Sprintf("attribute '%s' is not an integer: '%s'", name, raw)}
	}
	return value, nil
}

func SaveFile(path string, s Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Failed to create snapshot '%s': %w", path, err)
	}
	defer f.Close()
	if err := Write(f, s); err != nil {
		return fmt.Errorf("Failed to write snapshot '%s': %w", path, err)
	}
	return f.Close()
}

func LoadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("Failed to open snapshot '%s': %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
