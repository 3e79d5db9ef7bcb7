package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/cdoc/ast"
)

func newTestDocument(tag string) *ast.Document {
	return &ast.Document{Sections: []*ast.Section{{Pos: ast.Position{Line: 1}, Tag: tag}}}
}

func TestCaptureAggregate(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
		next  int
	}{
		{
			name:  "StructOverThreeLines",
			lines: []string{"struct foo {", "  int x;", "};", "int after;"},
			want:  []string{"struct foo {", "  int x;", "};"},
			next:  3,
		},
		{
			name:  "SingleLineTypedef",
			lines: []string{"typedef unsigned long size;", "int after;"},
			want:  []string{"typedef unsigned long size;"},
			next:  1,
		},
		{
			name:  "SemicolonInsideBracesIgnored",
			lines: []string{"struct s { int a; int b; } v;"},
			want:  []string{"struct s { int a; int b; } v;"},
			next:  1,
		},
		{
			name:  "NestedAggregates",
			lines: []string{"union u {", "  struct { int a; } s;", "  int b;", "};"},
			want:  []string{"union u {", "  struct { int a; } s;", "  int b;", "};"},
			next:  4,
		},
		{
			name:  "VariableWithInitializer",
			lines: []string{"static int table[] = {", "  1, 2, 3,", "};", ""},
			want:  []string{"static int table[] = {", "  1, 2, 3,", "};"},
			next:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &parser{lines: tt.lines}
			d := newTestDocument("struct")

			next, err := p.captureSource(d, 0)
			assert.NoError(t, err)
			assert.Equal(t, tt.next, next)
			assert.Equal(t, tt.want, d.SourceText())
		})
	}
}

func TestCaptureFunction(t *testing.T) {
	t.Run("Prototype", func(t *testing.T) {
		p := &parser{lines: []string{"int f(int x);", "int g;"}}
		d := newTestDocument("function")

		next, err := p.captureSource(d, 0)
		assert.NoError(t, err)
		assert.Equal(t, 1, next)
		assert.Equal(t, []ast.Line{{Number: 1, Text: "int f(int x);"}}, d.Source)
	})

	t.Run("DefinitionOmitsBody", func(t *testing.T) {
		p := &parser{lines: []string{"int f(int x) {", "    return x + 1;", "}"}}
		d := newTestDocument("function")

		next, err := p.captureSource(d, 0)
		assert.NoError(t, err)
		assert.Equal(t, 1, next)
		assert.Equal(t, []ast.Line{
			{Number: 1, Text: "int f(int x) {"},
			{Number: 0, Text: ast.FunctionBodyPlaceholder},
		}, d.Source)
	})

	t.Run("MultiLineSignature", func(t *testing.T) {
		p := &parser{lines: []string{"static void", "run(int argc,", "    char **argv)", "{", "}"}}
		d := newTestDocument("function")

		next, err := p.captureSource(d, 0)
		assert.NoError(t, err)
		assert.Equal(t, 4, next)
		assert.Equal(t, []string{"static void", "run(int argc,", "    char **argv)", "{", ast.FunctionBodyPlaceholder}, d.SourceText())
	})

	t.Run("FirstOfSemicolonOrBraceWins", func(t *testing.T) {
		p := &parser{lines: []string{"void f(void) { g(); }"}}
		d := newTestDocument("function")

		_, err := p.captureSource(d, 0)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(d.Source))
		assert.True(t, d.Source[1].Synthetic())
	})
}

func TestCaptureMacro(t *testing.T) {
	t.Run("Continued", func(t *testing.T) {
		p := &parser{lines: []string{`#define X(a) \`, "  (a + 1)", "int after;"}}
		d := newTestDocument("macro")

		next, err := p.captureSource(d, 0)
		assert.NoError(t, err)
		assert.Equal(t, 2, next)
		assert.Equal(t, []string{`#define X(a) \`, "  (a + 1)"}, d.SourceText())
	})

	t.Run("SingleLine", func(t *testing.T) {
		p := &parser{lines: []string{"#define ONE 1", "#define TWO 2"}}
		d := newTestDocument("macro")

		next, err := p.captureSource(d, 0)
		assert.NoError(t, err)
		assert.Equal(t, 1, next)
		assert.Equal(t, []string{"#define ONE 1"}, d.SourceText())
	})

	t.Run("BackslashNotLastCharacter", func(t *testing.T) {
		p := &parser{lines: []string{`#define SEP '\\' `, "int x;"}}
		d := newTestDocument("macro")

		next, err := p.captureSource(d, 0)
		assert.NoError(t, err)
		assert.Equal(t, 1, next)
	})
}

func TestCaptureNone(t *testing.T) {
	p := &parser{lines: []string{"int x;"}}
	d := newTestDocument("note")

	next, err := p.captureSource(d, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, next)
	assert.False(t, d.HasSource())
}

func TestCaptureUnterminated(t *testing.T) {
	inputs := map[string][]string{
		"struct":   {"struct a {", "  int x;"},
		"function": {"int f(void)", "  __attribute__((pure))"},
		"macro":    {`#define A \`, `  1 + \`},
	}

	for tag, lines := range inputs {
		t.Run(tag, func(t *testing.T) {
			p := &parser{filename: "u.c", lines: lines}
			d := newTestDocument(tag)
			d.Sections[0].Pos.Filename = "u.c"

			_, err := p.captureSource(d, 0)
			assert.IsError(t, err, UnterminatedDeclaration)
			assert.EqualError(t, err, "u.c:1: unterminated "+tag+" declaration (reached end of input)")

			var perr *Error
			assert.True(t, asError(err, &perr))
			assert.True(t, perr.GetDocument() == d)
		})
	}
}
