package ast

import (
	"golang.org/x/exp/slices"
)

// Kind is the category of source construct a documentation block describes. It
// selects the algorithm used to capture the block's source span.
type Kind int

const (
	// KindNone documents nothing capturable (@file, @note, ...).
	KindNone Kind = iota
	// KindAggregate covers struct, union, enum, typedef and variable declarations.
	KindAggregate
	// KindFunction covers function prototypes and definitions.
	KindFunction
	// KindMacro covers function-like macros, possibly continued across lines.
	KindMacro
)

var aggregateTags = []string{"struct", "union", "enum", "typedef", "variable"}

// KindOf maps a section tag to its construct kind by exact token equality.
func KindOf(tag string) Kind {
	switch {
	case slices.Contains(aggregateTags, tag):
		return KindAggregate
	case tag == "function":
		return KindFunction
	case tag == "macro":
		return KindMacro
	default:
		return KindNone
	}
}

func (k Kind) String() string {
	switch k {
	case KindAggregate:
		return "aggregate"
	case KindFunction:
		return "function"
	case KindMacro:
		return "macro"
	default:
		return "none"
	}
}
