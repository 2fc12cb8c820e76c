// Package token provides source location primitives shared by the parser
// and the lint engine.
package token

import "fmt"

// Position represents a location in template source.
type Position struct {
	Line   int // 1-based line number
	Column int // 0-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String returns the position as "L1:C4".
func (p Position) String() string {
	return fmt.Sprintf("L%d:C%d", p.Line, p.Column)
}

// Span represents a range in template source.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given byte offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// FormatLocation renders a module identifier plus position for display,
// e.g. "layout/application @ L2:C5".
func FormatLocation(moduleID string, pos Position) string {
	if !pos.IsValid() {
		return moduleID
	}
	return fmt.Sprintf("%s @ %s", moduleID, pos)
}
