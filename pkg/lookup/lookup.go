// Package lookup holds the constant tables that turn enumerated telemetry
// values into display labels and color tokens.
//
// Tables are indexed by the integer value of the matching telemetry enum.
// Every access is bounds-checked: an index outside the table yields a
// *LookupError instead of an empty string, so a corrupt or newer-firmware
// value is never rendered as a plausible label.
package lookup

import (
	"errors"
	"fmt"
)

// Color is a named color token understood by every renderer.
type Color string

const (
	ColorGray    Color = "gray"
	ColorGreen   Color = "green"
	ColorOrange  Color = "orange"
	ColorRed     Color = "red"
	ColorCyan    Color = "cyan"
	ColorNeutral Color = "#2c2929" // alarm not yet initialised
	ColorGrey    Color = "grey"    // thrust modes never shown to the pilot
)

// Entry is one row of a table.
type Entry struct {
	Label string
	Color Color
}

// Table is an immutable, ordered lookup table.
type Table struct {
	name    string
	entries []Entry
}

func newTable(name string, entries ...Entry) Table {
	return Table{name: name, entries: entries}
}

// labels builds a label-only table.
func labels(name string, values ...string) Table {
	entries := make([]Entry, len(values))
	for i, v := range values {
		entries[i] = Entry{Label: v}
	}
	return newTable(name, entries...)
}

// colors builds a color-only table.
func colors(name string, values ...Color) Table {
	entries := make([]Entry, len(values))
	for i, v := range values {
		entries[i] = Entry{Color: v}
	}
	return newTable(name, entries...)
}

// Name returns the table name used in errors.
func (t Table) Name() string { return t.name }

// Len returns the number of entries.
func (t Table) Len() int { return len(t.entries) }

// Entry returns the row at index.
func (t Table) Entry(index int) (Entry, error) {
	if index < 0 || index >= len(t.entries) {
		return Entry{}, &LookupError{Table: t.name, Index: index, Size: len(t.entries)}
	}
	return t.entries[index], nil
}

// Label returns the label at index.
func (t Table) Label(index int) (string, error) {
	e, err := t.Entry(index)
	if err != nil {
		return "", err
	}
	return e.Label, nil
}

// Color returns the color at index.
func (t Table) Color(index int) (Color, error) {
	e, err := t.Entry(index)
	if err != nil {
		return "", err
	}
	return e.Color, nil
}

// LookupError reports an enum value that does not index its table.
type LookupError struct {
	Table string
	Index int
	Size  int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s: index %d out of range [0,%d)", e.Table, e.Index, e.Size)
}

// IsLookupError checks if an error is a LookupError and returns it.
func IsLookupError(err error) (*LookupError, bool) {
	var le *LookupError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
