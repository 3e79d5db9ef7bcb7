package parser

import (
	"fmt"
	"strings"
)

// Style selects the comment syntax that marks documentation blocks. A single
// style is used for a whole run.
type Style int

const (
	// StyleLine marks every documentation line with a leading "//!".
	StyleLine Style = iota
	// StyleBlock delimits documentation with "/*!" and "*/". Continuation lines
	// may start with a decorative '*'.
	StyleBlock
)

const (
	lineMarker = "//!"
	blockOpen  = "/*!"
	blockClose = "*/"
)

// ParseStyle returns the style with the given name ("line" or "block").
func ParseStyle(name string) (Style, error) {
	switch name {
	case "line", "":
		return StyleLine, nil
	case "block":
		return StyleBlock, nil
	default:
		return StyleLine, fmt.Errorf("unknown comment style %q", name)
	}
}

func (s Style) String() string {
	if s == StyleBlock {
		return "block"
	}
	return "line"
}

func (s Style) marker() string {
	if s == StyleBlock {
		return blockOpen
	}
	return lineMarker
}

// IsDocOpening reports whether line opens a documentation block: after leading
// tabs, carriage returns and spaces it must begin with the style's marker.
func (s Style) IsDocOpening(line string) bool {
	i := skipHSpace(line, 0)
	return strings.HasPrefix(line[i:], s.marker())
}

// ExtractContent returns the documentation text of a line already confirmed with
// IsDocOpening: the text after the marker and its following whitespace. For the
// block style the text stops at a closing "*/" on the same line.
func (s Style) ExtractContent(line string) (string, error) {
	if !s.IsDocOpening(line) {
		return "", &Error{Kind: MalformedInput, Message: fmt.Sprintf("not a documentation line: %q", line)}
	}
	off := openingOffset(line)
	text := line[off:]
	if s == StyleBlock {
		if end := strings.Index(text, blockClose); end >= 0 {
			text = trimRightHSpace(text[:end])
		}
	}
	return text, nil
}

// openingOffset returns the offset of the content of a confirmed opening line.
// Both markers are three bytes long.
func openingOffset(line string) int {
	i := skipHSpace(line, 0) + len(lineMarker)
	return skipHSpace(line, i)
}

// contentLine is one line of documentation content.
type contentLine struct {
	index  int    // Line store index of the raw line
	offset int    // Byte offset of text within the raw line
	text   string // Content with comment syntax removed
}

// collectBlock gathers the content of the documentation block opening at
// cursor and returns the cursor of the first line after it.
func (p *parser) collectBlock(cursor int) ([]contentLine, int, error) {
	if p.style == StyleBlock {
		return p.collectDelimitedBlock(cursor)
	}

	var block []contentLine
	for cursor < len(p.lines) && p.style.IsDocOpening(p.lines[cursor]) {
		line := p.lines[cursor]
		text, err := p.style.ExtractContent(line)
		if err != nil {
			return nil, cursor, err
		}
		block = append(block, contentLine{index: cursor, offset: len(line) - len(text), text: text})
		cursor++
	}
	return block, cursor, nil
}

func (p *parser) collectDelimitedBlock(cursor int) ([]contentLine, int, error) {
	start := cursor
	line := p.lines[cursor]
	text, err := p.style.ExtractContent(line)
	if err != nil {
		return nil, cursor, err
	}
	opening := contentLine{index: cursor, offset: openingOffset(line), text: text}

	if strings.Contains(line[opening.offset:], blockClose) {
		return []contentLine{opening}, cursor + 1, nil
	}

	block := []contentLine{opening}
	for cursor++; cursor < len(p.lines); cursor++ {
		line := p.lines[cursor]
		off := continuationOffset(line)
		rest := line[off:]

		end := strings.Index(rest, blockClose)
		if end < 0 {
			block = append(block, contentLine{index: cursor, offset: off, text: rest})
			continue
		}
		if text := trimRightHSpace(rest[:end]); text != "" {
			block = append(block, contentLine{index: cursor, offset: off, text: text})
		}
		return block, cursor + 1, nil
	}

	return nil, cursor, newError(UnterminatedComment, p.pos(start), "unterminated doc-comment block")
}

// continuationOffset strips leading whitespace, then an optional '*' and one
// whitespace byte after it. A closing "*/" is left intact.
func continuationOffset(line string) int {
	i := skipHSpace(line, 0)
	if strings.HasPrefix(line[i:], blockClose) {
		return i
	}
	if i < len(line) && line[i] == '*' {
		i++
		if i < len(line) && isHSpace(line[i]) {
			i++
		}
	}
	return i
}
