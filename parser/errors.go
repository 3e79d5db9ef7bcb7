package parser

import (
	"fmt"

	"github.com/robinvdvleuten/cdoc/ast"
)

// ErrorKind classifies a parse failure. ErrorKind implements error so it can be
// used as a target for errors.Is:
//
//	if errors.Is(err, parser.EmptyTag) { ... }
type ErrorKind int

const (
	// IllegalByte reports a NUL byte in the input text.
	IllegalByte ErrorKind = iota + 1
	// MalformedInput reports content extraction from a line that is not a
	// documentation line.
	MalformedInput
	// EmptyTag reports a '@' with no tag token after it.
	EmptyTag
	// TrailingCharacters reports text after the name token of a tag line.
	TrailingCharacters
	// UnterminatedDeclaration reports a source capture that reached the end
	// of input before its stop condition.
	UnterminatedDeclaration
	// UnterminatedComment reports a block comment without its closing marker.
	UnterminatedComment
)

func (k ErrorKind) String() string {
	switch k {
	case IllegalByte:
		return "illegal byte"
	case MalformedInput:
		return "malformed input"
	case EmptyTag:
		return "empty tag"
	case TrailingCharacters:
		return "trailing characters"
	case UnterminatedDeclaration:
		return "unterminated declaration"
	case UnterminatedComment:
		return "unterminated comment"
	default:
		return "unknown"
	}
}

func (k ErrorKind) Error() string { return k.String() }

// Error is a fatal problem found while extracting documentation.
type Error struct {
	Kind    ErrorKind
	Pos     ast.Position
	Message string

	// Document is the partially assembled document an UnterminatedDeclaration
	// belongs to; nil for other kinds.
	Document *ast.Document
}

func (e *Error) Error() string {
	if e.Pos.IsZero() {
		return e.Message
	}
	location := fmt.Sprintf("%s:%d", e.Pos.Filename, e.Pos.Line)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d", e.Pos.Line)
	}

	return fmt.Sprintf("%s: %s", location, e.Message)
}

// Is reports whether target is the ErrorKind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func (e *Error) GetPosition() ast.Position {
	return e.Pos
}

func (e *Error) GetDocument() *ast.Document {
	return e.Document
}

func newError(kind ErrorKind, pos ast.Position, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}
