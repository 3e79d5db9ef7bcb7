package ast

import "fmt"

// Position represents a location in the source file.
type Position struct {
	Filename string
	Line     int // Line number (1-indexed)
	Column   int // Column number (1-indexed, 0 when unknown)
}

// LinePosition returns the position of the line at the given 0-indexed line store index.
func LinePosition(filename string, index int) Position {
	return Position{Filename: filename, Line: index + 1}
}

// IsZero returns true if this is an uninitialized position.
func (p Position) IsZero() bool {
	return p.Line == 0
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		if p.Column > 0 {
			return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
		}
		return fmt.Sprintf("%s:%d", p.Filename, p.Line)
	}
	if p.Column > 0 {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("line %d", p.Line)
}

// GoString returns a Go-syntax representation of the position.
func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Line: %d, Column: %d}", p.Filename, p.Line, p.Column)
}
