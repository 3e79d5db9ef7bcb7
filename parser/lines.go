package parser

import (
	"bytes"
	"strings"

	"github.com/robinvdvleuten/cdoc/ast"
)

// Split converts text into the ordered, 0-indexed line sequence the parser scans.
//
// The text is copied once; every returned line is a view into that copy. Lines
// carry no trailing newline and the empty segment after a final newline is
// dropped, so empty input yields zero lines. Text containing a NUL byte is
// rejected with an IllegalByte error.
func Split(filename string, data []byte) ([]string, error) {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		lineStart := bytes.LastIndexByte(data[:i], '\n') + 1
		pos := ast.Position{
			Filename: filename,
			Line:     bytes.Count(data[:i], []byte{'\n'}) + 1,
			Column:   i - lineStart + 1,
		}
		return nil, newError(IllegalByte, pos, "encountered illegal NUL byte")
	}

	if len(data) == 0 {
		return nil, nil
	}

	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func isHSpace(c byte) bool {
	return c == '\t' || c == '\r' || c == ' '
}

// skipHSpace returns the index of the first non horizontal whitespace byte in s
// at or after i.
func skipHSpace(s string, i int) int {
	for i < len(s) && isHSpace(s[i]) {
		i++
	}
	return i
}

// scanToken returns the end of the whitespace-delimited token starting at i.
func scanToken(s string, i int) int {
	for i < len(s) && !isHSpace(s[i]) {
		i++
	}
	return i
}

func trimRightHSpace(s string) string {
	return strings.TrimRight(s, "\t\r ")
}
