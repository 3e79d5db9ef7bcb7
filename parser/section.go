package parser

import (
	"strings"

	"github.com/robinvdvleuten/cdoc/ast"
)

// parseSections partitions one block's content into sections. Lines before the
// first tag line are skipped, so a block without any tag yields no sections.
func (p *parser) parseSections(block []contentLine) ([]*ast.Section, error) {
	var sections []*ast.Section
	var current *ast.Section

	for _, cl := range block {
		if strings.HasPrefix(cl.text, "@") {
			s, err := p.parseTagLine(cl)
			if err != nil {
				return nil, err
			}
			sections = append(sections, s)
			current = s
			continue
		}

		if current == nil {
			continue
		}
		current.Body = append(current.Body, cl.text)
	}

	return sections, nil
}

// parseTagLine parses "@TAG [NAME]" with nothing but whitespace after NAME.
func (p *parser) parseTagLine(cl contentLine) (*ast.Section, error) {
	text := cl.text
	pos := p.pos(cl.index)

	tagEnd := scanToken(text, 1)
	if tagEnd == 1 {
		pos.Column = cl.offset + 1
		return nil, newError(EmptyTag, pos, "empty doc-comment tag")
	}

	nameStart := skipHSpace(text, tagEnd)
	nameEnd := scanToken(text, nameStart)

	if rest := skipHSpace(text, nameEnd); rest < len(text) {
		pos.Column = cl.offset + rest + 1
		return nil, newError(TrailingCharacters, pos, "extra character(s) after tag line <NAME>")
	}

	return &ast.Section{
		Pos:  pos,
		Tag:  text[1:tagEnd],
		Name: text[nameStart:nameEnd],
	}, nil
}
