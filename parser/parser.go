// Package parser extracts documentation blocks from C-like source text.
//
// The parser scans a file's lines once, front to back, with an explicit cursor.
// Each documentation block is split into tagged sections; the tag of the first
// section selects how the source construct following the block is captured:
//
//	//! @struct point
//	//! A point in the plane.
//	struct point {
//	    int x, y;
//	};
//
// yields one Document with a "struct" section and the three declaration lines as
// its source. Errors abort the scan and are reported as *Error values.
package parser

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/cdoc/ast"
	"github.com/robinvdvleuten/cdoc/telemetry"
)

// Option configures a parse.
type Option func(*parser)

// WithStyle selects the documentation comment syntax. The default is StyleLine.
func WithStyle(style Style) Option {
	return func(p *parser) {
		p.style = style
	}
}

type parser struct {
	filename string
	lines    []string
	style    Style
}

// ParseString parses documentation from a string.
func ParseString(ctx context.Context, str string, opts ...Option) (*ast.File, error) {
	return ParseBytes(ctx, []byte(str), opts...)
}

// ParseBytes parses documentation from a byte slice.
func ParseBytes(ctx context.Context, data []byte, opts ...Option) (*ast.File, error) {
	return ParseBytesWithFilename(ctx, "", data, opts...)
}

// ParseBytesWithFilename parses documentation from a byte slice, using filename in
// positions and error messages.
func ParseBytesWithFilename(ctx context.Context, filename string, data []byte, opts ...Option) (*ast.File, error) {
	lines, err := Split(filename, data)
	if err != nil {
		return nil, err
	}
	return ParseLines(ctx, filename, lines, opts...)
}

// ParseLines parses documentation from an already split line sequence.
func ParseLines(ctx context.Context, filename string, lines []string, opts ...Option) (*ast.File, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("parser.parse %s", displayName(filename)))
	defer timer.End()

	p := &parser{
		filename: filename,
		lines:    lines,
	}
	for _, opt := range opts {
		opt(p)
	}

	file, err := p.parse()
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", displayName(filename)).
		Int("lines", len(lines)).
		Int("documents", len(file.Documents)).
		Str("style", p.style.String()).
		Msg("parsed documentation")

	return file, nil
}

// parse drives the scan. The cursor only moves forward.
func (p *parser) parse() (*ast.File, error) {
	file := &ast.File{Filename: p.filename}

	cursor := 0
	for cursor < len(p.lines) {
		if !p.style.IsDocOpening(p.lines[cursor]) {
			cursor++
			continue
		}

		doc, next, err := p.parseDocument(cursor)
		if err != nil {
			return nil, err
		}
		cursor = next

		if doc != nil {
			file.Documents = append(file.Documents, doc)
		}
	}

	return file, nil
}

// parseDocument parses the block opening at cursor and the source it describes.
// A block without sections produces no document.
func (p *parser) parseDocument(cursor int) (*ast.Document, int, error) {
	start := cursor

	block, cursor, err := p.collectBlock(cursor)
	if err != nil {
		return nil, cursor, err
	}

	sections, err := p.parseSections(block)
	if err != nil {
		return nil, cursor, err
	}
	if len(sections) == 0 {
		return nil, cursor, nil
	}

	doc := &ast.Document{
		Pos:      p.pos(start),
		Sections: sections,
	}

	cursor, err = p.captureSource(doc, cursor)
	if err != nil {
		return nil, cursor, err
	}

	return doc, cursor, nil
}

func (p *parser) pos(index int) ast.Position {
	return ast.LinePosition(p.filename, index)
}

func displayName(filename string) string {
	if filename == "" {
		return "<input>"
	}
	return filepath.Base(filename)
}
