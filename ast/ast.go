// Package ast declares the types used to represent documentation extracted from
// C-like source files.
//
// A File holds the Documents discovered in one input, in source order. Each Document
// is one documentation block split into tagged Sections, optionally followed by the
// span of source lines the block describes. The types can be produced by the parser
// package, or constructed programmatically for rendering with the formatter package.
package ast

// FunctionBodyPlaceholder is the synthetic line inserted after the opening line of a
// captured function definition in place of its body.
const FunctionBodyPlaceholder = "    /* ... */"

// File represents the parsed documentation of a single input.
type File struct {
	Filename  string
	Documents []*Document
}

// Section is one `@tag [name]` unit of a documentation block together with the
// content lines that follow it.
type Section struct {
	Pos  Position
	Tag  string   // Token following '@', never empty
	Name string   // Token following the tag, empty when absent
	Body []string // Content lines with the comment marker stripped
}

// HasName reports whether the tag line carried a name.
func (s *Section) HasName() bool { return s.Name != "" }

// Line is a single line of captured source.
type Line struct {
	Number int    // 1-indexed source line, 0 for synthetic lines
	Text   string // Raw line text
	Doc    bool   // Part of a member documentation block nested in the capture
}

// Synthetic reports whether the line was generated rather than read from the input.
func (l Line) Synthetic() bool { return l.Number == 0 }

// Document is one documentation block plus its associated source span.
type Document struct {
	Pos      Position
	Sections []*Section

	// Source is nil when no construct kind was recognized for the first section.
	Source []Line
}

// Kind returns the construct kind selected by the document's first section.
func (d *Document) Kind() Kind {
	if len(d.Sections) == 0 {
		return KindNone
	}
	return KindOf(d.Sections[0].Tag)
}

// HasSource reports whether a source span was captured for the document.
func (d *Document) HasSource() bool { return d.Source != nil }

// AddSections appends sections found in member documentation nested in the
// document's source span.
func (d *Document) AddSections(sections ...*Section) {
	d.Sections = append(d.Sections, sections...)
}

// SourceText returns the captured lines that are not member documentation.
func (d *Document) SourceText() []string {
	if d.Source == nil {
		return nil
	}
	text := make([]string, 0, len(d.Source))
	for _, l := range d.Source {
		if l.Doc {
			continue
		}
		text = append(text, l.Text)
	}
	return text
}
