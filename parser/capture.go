package parser

import (
	"strings"

	"github.com/robinvdvleuten/cdoc/ast"
)

// captureSource captures the source span described by doc, starting at cursor,
// and returns the cursor after the span. Documents of KindNone capture nothing.
func (p *parser) captureSource(doc *ast.Document, cursor int) (int, error) {
	switch doc.Kind() {
	case ast.KindAggregate:
		return p.captureAggregate(doc, cursor)
	case ast.KindFunction:
		return p.captureFunction(doc, cursor)
	case ast.KindMacro:
		return p.captureMacro(doc, cursor)
	default:
		return cursor, nil
	}
}

// captureAggregate captures a struct, union, enum, typedef or variable
// declaration: every line up to and including the one where ';' appears at
// brace depth zero.
//
// Documentation blocks opening inside the span are member documentation. Their
// lines are kept in the span flagged as Doc, are not scanned for braces, and
// their sections are appended to doc.
func (p *parser) captureAggregate(doc *ast.Document, cursor int) (int, error) {
	var source []ast.Line
	depth := 0

	for cursor < len(p.lines) {
		if p.style.IsDocOpening(p.lines[cursor]) {
			block, next, err := p.collectBlock(cursor)
			if err != nil {
				return cursor, err
			}
			sections, err := p.parseSections(block)
			if err != nil {
				return cursor, err
			}
			doc.AddSections(sections...)

			for ; cursor < next; cursor++ {
				source = append(source, p.sourceLine(cursor, true))
			}
			continue
		}

		line := p.lines[cursor]
		source = append(source, p.sourceLine(cursor, false))
		cursor++

		for i := 0; i < len(line); i++ {
			switch line[i] {
			case '{':
				depth++
			case '}':
				depth--
			case ';':
				if depth == 0 {
					doc.Source = source
					return cursor, nil
				}
			}
		}
	}

	return cursor, p.unterminated(doc)
}

// captureFunction captures a function prototype up to its first ';', or the
// signature of a definition up to its first '{' followed by a placeholder line
// standing in for the body. The body itself is left to the outer scan.
func (p *parser) captureFunction(doc *ast.Document, cursor int) (int, error) {
	var source []ast.Line

	for cursor < len(p.lines) {
		line := p.lines[cursor]
		source = append(source, p.sourceLine(cursor, false))
		cursor++

		if i := strings.IndexAny(line, ";{"); i >= 0 {
			if line[i] == '{' {
				source = append(source, ast.Line{Text: ast.FunctionBodyPlaceholder})
			}
			doc.Source = source
			return cursor, nil
		}
	}

	return cursor, p.unterminated(doc)
}

// captureMacro captures a macro definition and every line continued from it with
// a trailing backslash.
func (p *parser) captureMacro(doc *ast.Document, cursor int) (int, error) {
	var source []ast.Line

	for cursor < len(p.lines) {
		line := p.lines[cursor]
		source = append(source, p.sourceLine(cursor, false))
		cursor++

		if !strings.HasSuffix(strings.TrimSuffix(line, "\r"), `\`) {
			doc.Source = source
			return cursor, nil
		}
	}

	return cursor, p.unterminated(doc)
}

func (p *parser) sourceLine(index int, doc bool) ast.Line {
	return ast.Line{Number: index + 1, Text: p.lines[index], Doc: doc}
}

func (p *parser) unterminated(doc *ast.Document) error {
	first := doc.Sections[0]
	err := newError(UnterminatedDeclaration, first.Pos, "unterminated %s declaration (reached end of input)", first.Tag)
	err.Document = doc
	return err
}
