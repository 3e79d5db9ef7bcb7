// Package formatter renders parsed documentation as HTML fragments.
//
// Every document becomes a heading per section, the section body verbatim, an
// optional <pre> block with the captured source and a closing <hr>:
//
//	<h3>function: add</h3>
//	Adds two integers.
//	<pre>
//	int add(int a, int b)
//	{
//	    /* ... */
//	</pre>
//	<hr>
//
// Text is written unescaped unless WithEscapeHTML is given.
package formatter

import (
	"context"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/robinvdvleuten/cdoc/ast"
	"github.com/robinvdvleuten/cdoc/telemetry"
)

const (
	// DefaultHeadingLevel is the level of the <hN> element emitted per section.
	DefaultHeadingLevel = 3

	minHeadingLevel = 1
	maxHeadingLevel = 6
)

// Formatter writes documents as HTML.
type Formatter struct {
	// HeadingLevel selects the heading element for section titles (1-6).
	HeadingLevel int

	// EscapeHTML escapes tags, names, body and source text before writing.
	EscapeHTML bool
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithHeadingLevel sets the heading level of section titles. Levels outside
// 1-6 are clamped.
func WithHeadingLevel(level int) Option {
	return func(f *Formatter) {
		f.HeadingLevel = min(max(level, minHeadingLevel), maxHeadingLevel)
	}
}

// WithEscapeHTML enables HTML escaping of all interpolated text.
func WithEscapeHTML() Option {
	return func(f *Formatter) {
		f.EscapeHTML = true
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		HeadingLevel: DefaultHeadingLevel,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Format writes every document of file to w, in order. Output is buffered and
// written once.
func (f *Formatter) Format(ctx context.Context, file *ast.File, w io.Writer) error {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("formatter.format %s", displayName(file.Filename)))
	defer timer.End()

	var buf strings.Builder
	buf.Grow(estimateSize(file))

	for _, doc := range file.Documents {
		f.formatDocument(doc, &buf)
	}
	timer.Note(fmt.Sprintf("%d documents", len(file.Documents)))

	_, err := io.WriteString(w, buf.String())
	return err
}

// FormatDocument writes a single document to w.
func (f *Formatter) FormatDocument(doc *ast.Document, w io.Writer) error {
	var buf strings.Builder
	f.formatDocument(doc, &buf)
	_, err := io.WriteString(w, buf.String())
	return err
}

func (f *Formatter) formatDocument(doc *ast.Document, buf *strings.Builder) {
	for _, section := range doc.Sections {
		f.formatSection(section, buf)
	}

	if doc.HasSource() {
		buf.WriteString("<pre>\n")
		for _, line := range doc.Source {
			if line.Doc {
				continue
			}
			f.writeLine(line.Text, buf)
		}
		buf.WriteString("</pre>\n")
	}

	buf.WriteString("<hr>\n")
}

func (f *Formatter) formatSection(section *ast.Section, buf *strings.Builder) {
	level := strconv.Itoa(f.headingLevel())

	buf.WriteString("<h")
	buf.WriteString(level)
	buf.WriteByte('>')
	buf.WriteString(f.escape(section.Tag))
	buf.WriteString(": ")
	buf.WriteString(f.escape(section.Name))
	buf.WriteString("</h")
	buf.WriteString(level)
	buf.WriteString(">\n")

	for _, line := range section.Body {
		f.writeLine(line, buf)
	}
}

func (f *Formatter) writeLine(text string, buf *strings.Builder) {
	buf.WriteString(f.escape(text))
	buf.WriteByte('\n')
}

func (f *Formatter) escape(s string) string {
	if !f.EscapeHTML {
		return s
	}
	return html.EscapeString(s)
}

// headingLevel guards against a zero-value Formatter.
func (f *Formatter) headingLevel() int {
	if f.HeadingLevel < minHeadingLevel || f.HeadingLevel > maxHeadingLevel {
		return DefaultHeadingLevel
	}
	return f.HeadingLevel
}

// estimateSize approximates the rendered size to reduce allocations.
func estimateSize(file *ast.File) int {
	size := 0
	for _, doc := range file.Documents {
		size += 32
		for _, s := range doc.Sections {
			size += len(s.Tag) + len(s.Name) + 16
			for _, line := range s.Body {
				size += len(line) + 1
			}
		}
		for _, line := range doc.Source {
			size += len(line.Text) + 1
		}
	}
	return size
}

func displayName(filename string) string {
	if filename == "" {
		return "<input>"
	}
	return filename
}
