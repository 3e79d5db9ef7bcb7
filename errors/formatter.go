// Package errors renders cdoc errors for different consumers.
//
// Domain error types stay in their packages (parser.Error, loader.ReadError);
// this package only handles presentation:
//   - TextFormatter: plain text for the command line, with source context
//   - JSONFormatter: structured JSON for tooling and the preview server
package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/cdoc/ast"
	"github.com/robinvdvleuten/cdoc/formatter"
	"github.com/robinvdvleuten/cdoc/loader"
	"github.com/robinvdvleuten/cdoc/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string
}

type positioned interface {
	error
	GetPosition() ast.Position
}

type documented interface {
	positioned
	GetDocument() *ast.Document
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	formatter     *formatter.Formatter
	sourceContent []byte // Optional source content for error context
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content shown around an error position.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// NewTextFormatter creates a new text formatter. f renders the document an
// error belongs to; nil selects the default formatter.
func NewTextFormatter(f *formatter.Formatter, opts ...TextFormatterOption) *TextFormatter {
	if f == nil {
		f = formatter.New()
	}
	tf := &TextFormatter{formatter: f}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	var pe positioned
	if !stderrors.As(err, &pe) {
		return err.Error()
	}

	if tf.sourceContent != nil && !pe.GetPosition().IsZero() {
		return tf.formatWithSourceContext(pe.GetPosition(), err.Error(), tf.sourceContent)
	}

	var de documented
	if stderrors.As(err, &de) && de.GetDocument() != nil {
		return tf.formatWithDocument(err.Error(), de.GetDocument())
	}

	return err.Error()
}

// formatWithSourceContext shows the message followed by the source lines
// around the error position, with a caret under the column when known.
func (tf *TextFormatter) formatWithSourceContext(pos ast.Position, message string, sourceContent []byte) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	for _, line := range ContextLines(sourceContent, pos) {
		buf.WriteString("   ")
		buf.WriteString(line.Text)
		buf.WriteByte('\n')

		if line.Number == pos.Line && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// formatWithDocument shows the message followed by the document the error
// belongs to, rendered by the formatter.
func (tf *TextFormatter) formatWithDocument(message string, doc *ast.Document) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	var docBuf bytes.Buffer
	if err := tf.formatter.FormatDocument(doc, &docBuf); err == nil {
		for _, line := range bytes.Split(docBuf.Bytes(), []byte("\n")) {
			if len(line) > 0 {
				buf.WriteString("   ")
				buf.Write(line)
				buf.WriteByte('\n')
			}
		}
	}

	return buf.String()
}

// ContextLines returns the source lines shown around pos: two lines before
// the error line and one after.
func ContextLines(sourceContent []byte, pos ast.Position) []ast.Line {
	sourceLines := strings.Split(string(sourceContent), "\n")

	start := max(pos.Line-3, 0)
	end := min(pos.Line, len(sourceLines)-1)

	var lines []ast.Line
	for i := start; i <= end; i++ {
		lines = append(lines, ast.Line{Number: i + 1, Text: sourceLines[i]})
	}
	return lines
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Position *PositionJSON  `json:"position,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as one line of JSON. HTML characters are
// left unescaped so filenames such as <stdin> read naturally.
func (jf *JSONFormatter) Format(err error) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(jf.ToJSON(err))
	return strings.TrimSuffix(buf.String(), "\n")
}

// ToJSON converts err into its JSON representation.
func (jf *JSONFormatter) ToJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Details: make(map[string]any),
	}

	var pe positioned
	if stderrors.As(err, &pe) && !pe.GetPosition().IsZero() {
		pos := pe.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	var parseErr *parser.Error
	var readErr *loader.ReadError
	switch {
	case stderrors.As(err, &parseErr):
		errJSON.Type = "parse"
		errJSON.Details["kind"] = parseErr.Kind.String()
		if doc := parseErr.GetDocument(); doc != nil && len(doc.Sections) > 0 {
			errJSON.Details["tag"] = doc.Sections[0].Tag
			errJSON.Details["name"] = doc.Sections[0].Name
		}
	case stderrors.As(err, &readErr):
		errJSON.Type = "read"
		errJSON.Details["file"] = readErr.Filename
	}

	return errJSON
}
