package cli

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/cdoc/ast"
	"github.com/robinvdvleuten/cdoc/errors"
	"github.com/robinvdvleuten/cdoc/formatter"
	"github.com/robinvdvleuten/cdoc/loader"
	"github.com/robinvdvleuten/cdoc/parser"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source []byte
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	var pe interface {
		error
		GetPosition() ast.Position
	}
	if stderrors.As(err, &pe) && r.source != nil && !pe.GetPosition().IsZero() {
		return r.renderWithSourceContext(pe.GetPosition(), err.Error())
	}

	var de interface {
		error
		GetDocument() *ast.Document
	}
	if stderrors.As(err, &de) && de.GetDocument() != nil {
		return r.renderWithDocument(err.Error(), de.GetDocument())
	}

	return errorStyle.Render(err.Error())
}

func (r *ErrorRenderer) renderWithSourceContext(pos ast.Position, message string) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	for _, line := range errors.ContextLines(r.source, pos) {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(line.Text))
		buf.WriteByte('\n')

		if line.Number == pos.Line && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// renderWithDocument shows the sections of the document an error belongs to.
func (r *ErrorRenderer) renderWithDocument(message string, doc *ast.Document) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	var docBuf bytes.Buffer
	if err := formatter.New().FormatDocument(doc, &docBuf); err == nil {
		for _, line := range bytes.Split(docBuf.Bytes(), []byte("\n")) {
			if len(line) > 0 {
				buf.WriteString("   ")
				buf.WriteString(errContextStyle.Render(string(line)))
				buf.WriteByte('\n')
			}
		}
	}

	return buf.String()
}

// errorSummary names the failure shown after the rendered error.
func errorSummary(err error) string {
	var parseErr *parser.Error
	var readErr *loader.ReadError
	switch {
	case stderrors.As(err, &parseErr):
		return "parse error"
	case stderrors.As(err, &readErr):
		return "read error"
	default:
		return ""
	}
}

// reportError writes err to stderr in the selected error format and returns
// the CommandError that ends the run.
func (g *Globals) reportError(ctx *kong.Context, err error, source []byte) error {
	if g.ErrorFormat == "json" {
		_, _ = fmt.Fprintln(ctx.Stderr, errors.NewJSONFormatter().Format(err))
		return NewCommandError(1)
	}

	_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(source).Render(err))
	if summary := errorSummary(err); summary != "" {
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, summary)
	}

	return NewCommandError(1)
}
