package parser

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/cdoc/ast"
)

func asError(err error, target **Error) bool {
	return errors.As(err, target)
}

func TestErrorMessage(t *testing.T) {
	t.Run("WithFilename", func(t *testing.T) {
		err := newError(EmptyTag, ast.Position{Filename: "foo.c", Line: 3, Column: 5}, "empty doc-comment tag")
		assert.Equal(t, "foo.c:3: empty doc-comment tag", err.Error())
	})

	t.Run("WithoutFilename", func(t *testing.T) {
		err := newError(TrailingCharacters, ast.Position{Line: 7}, "extra character(s) after tag line <NAME>")
		assert.Equal(t, "line 7: extra character(s) after tag line <NAME>", err.Error())
	})

	t.Run("WithoutPosition", func(t *testing.T) {
		err := &Error{Kind: MalformedInput, Message: "not a documentation line"}
		assert.Equal(t, "not a documentation line", err.Error())
	})
}

func TestErrorIs(t *testing.T) {
	var err error = newError(UnterminatedDeclaration, ast.Position{Line: 1}, "unterminated struct declaration")

	assert.True(t, errors.Is(err, UnterminatedDeclaration))
	assert.False(t, errors.Is(err, UnterminatedComment))

	wrapped := wrap(err)
	assert.True(t, errors.Is(wrapped, UnterminatedDeclaration))

	var perr *Error
	assert.True(t, errors.As(wrapped, &perr))
	assert.Equal(t, 1, perr.GetPosition().Line)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "empty tag", EmptyTag.String())
	assert.Equal(t, "trailing characters", TrailingCharacters.Error())
	assert.Equal(t, "unknown", ErrorKind(0).String())
}

type wrapped struct{ err error }

func (w wrapped) Error() string { return "context: " + w.err.Error() }
func (w wrapped) Unwrap() error { return w.err }

func wrap(err error) error { return wrapped{err} }
