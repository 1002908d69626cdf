package history

import "fmt"

// ConfigurationError is returned when a store is created with a capacity that
// cannot hold even the current entry.
type ConfigurationError struct {
	Capacity int
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("Invalid history capacity %d: must be at least 1", e.Capacity)
}

type InvalidCursorError struct {
	Cursor int
	Len    int
}

func (e InvalidCursorError) Error() string {
	if e.Len == 0 {
		return "Cannot restore history without entries"
	}
	return fmt.Sprintf("Cursor %d out of range for %d entries", e.Cursor, e.Len)
}
