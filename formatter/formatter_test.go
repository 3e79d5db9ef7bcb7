package formatter

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/cdoc/ast"
	"github.com/robinvdvleuten/cdoc/parser"
	"github.com/robinvdvleuten/cdoc/telemetry"
)

func TestNew(t *testing.T) {
	t.Run("DefaultOptions", func(t *testing.T) {
		f := New()
		assert.Equal(t, DefaultHeadingLevel, f.HeadingLevel)
		assert.False(t, f.EscapeHTML)
	})

	t.Run("WithHeadingLevel", func(t *testing.T) {
		assert.Equal(t, 1, New(WithHeadingLevel(1)).HeadingLevel)
		assert.Equal(t, 6, New(WithHeadingLevel(6)).HeadingLevel)
	})

	t.Run("WithHeadingLevelClamps", func(t *testing.T) {
		assert.Equal(t, 1, New(WithHeadingLevel(0)).HeadingLevel)
		assert.Equal(t, 6, New(WithHeadingLevel(9)).HeadingLevel)
	})

	t.Run("WithEscapeHTML", func(t *testing.T) {
		assert.True(t, New(WithEscapeHTML()).EscapeHTML)
	})
}

func TestFormatDocument(t *testing.T) {
	tests := []struct {
		name     string
		doc      *ast.Document
		expected string
	}{
		{
			name: "SectionWithoutSource",
			doc: &ast.Document{
				Sections: []*ast.Section{{Tag: "file", Name: "util.c", Body: []string{"Utilities."}}},
			},
			expected: "<h3>file: util.c</h3>\nUtilities.\n<hr>\n",
		},
		{
			name: "EmptyName",
			doc: &ast.Document{
				Sections: []*ast.Section{{Tag: "note"}},
			},
			expected: "<h3>note: </h3>\n<hr>\n",
		},
		{
			name: "EmptyBodyLinesPreserved",
			doc: &ast.Document{
				Sections: []*ast.Section{{Tag: "note", Name: "a", Body: []string{"one", "", "two"}}},
			},
			expected: "<h3>note: a</h3>\none\n\ntwo\n<hr>\n",
		},
		{
			name: "EmptySourceStillRendersPre",
			doc: &ast.Document{
				Sections: []*ast.Section{{Tag: "variable", Name: "x"}},
				Source:   []ast.Line{},
			},
			expected: "<h3>variable: x</h3>\n<pre>\n</pre>\n<hr>\n",
		},
		{
			name: "DocLinesOmittedFromSource",
			doc: &ast.Document{
				Sections: []*ast.Section{
					{Tag: "struct", Name: "s"},
					{Tag: "member", Name: "x"},
				},
				Source: []ast.Line{
					{Number: 3, Text: "struct s {"},
					{Number: 4, Text: "    //! @member x", Doc: true},
					{Number: 5, Text: "    int x;"},
					{Number: 6, Text: "};"},
				},
			},
			expected: "<h3>struct: s</h3>\n<h3>member: x</h3>\n<pre>\nstruct s {\n    int x;\n};\n</pre>\n<hr>\n",
		},
		{
			name: "SyntheticPlaceholder",
			doc: &ast.Document{
				Sections: []*ast.Section{{Tag: "function", Name: "f"}},
				Source: []ast.Line{
					{Number: 1, Text: "void f(void) {"},
					{Text: ast.FunctionBodyPlaceholder},
				},
			},
			expected: "<h3>function: f</h3>\n<pre>\nvoid f(void) {\n    /* ... */\n</pre>\n<hr>\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := New().FormatDocument(test.doc, &buf)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, buf.String())
		})
	}
}

func TestFormatUnescapedByDefault(t *testing.T) {
	doc := &ast.Document{
		Sections: []*ast.Section{{Tag: "macro", Name: "<b>", Body: []string{"a & b"}}},
		Source:   []ast.Line{{Number: 2, Text: "#define LT(a, b) ((a) < (b))"}},
	}

	var buf bytes.Buffer
	assert.NoError(t, New().FormatDocument(doc, &buf))
	assert.Equal(t, "<h3>macro: <b></h3>\na & b\n<pre>\n#define LT(a, b) ((a) < (b))\n</pre>\n<hr>\n", buf.String())

	buf.Reset()
	assert.NoError(t, New(WithEscapeHTML()).FormatDocument(doc, &buf))
	assert.Equal(t, "<h3>macro: &lt;b&gt;</h3>\na &amp; b\n<pre>\n#define LT(a, b) ((a) &lt; (b))\n</pre>\n<hr>\n", buf.String())
}

func TestFormatZeroValueFormatter(t *testing.T) {
	var f Formatter
	var buf bytes.Buffer
	err := f.FormatDocument(&ast.Document{Sections: []*ast.Section{{Tag: "t", Name: "n"}}}, &buf)
	assert.NoError(t, err)
	assert.Equal(t, "<h3>t: n</h3>\n<hr>\n", buf.String())
}

func TestFormat(t *testing.T) {
	t.Run("EmptyFile", func(t *testing.T) {
		var buf bytes.Buffer
		err := New().Format(context.Background(), &ast.File{}, &buf)
		assert.NoError(t, err)
		assert.Equal(t, "", buf.String())
	})

	t.Run("DocumentsInOrder", func(t *testing.T) {
		source := "//! @macro A\n#define A 1\n//! @macro B\n#define B 2\n"
		file, err := parser.ParseString(context.Background(), source)
		assert.NoError(t, err)

		var buf bytes.Buffer
		err = New().Format(context.Background(), file, &buf)
		assert.NoError(t, err)

		expected := "<h3>macro: A</h3>\n<pre>\n#define A 1\n</pre>\n<hr>\n" +
			"<h3>macro: B</h3>\n<pre>\n#define B 2\n</pre>\n<hr>\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("Deterministic", func(t *testing.T) {
		source := "//! @struct s\nstruct s {\n  //! @member a\n  int a;\n};\n//! @function f\nint f(void)\n{\n}\n"
		file, err := parser.ParseString(context.Background(), source)
		assert.NoError(t, err)

		var first, second bytes.Buffer
		assert.NoError(t, New().Format(context.Background(), file, &first))
		assert.NoError(t, New().Format(context.Background(), file, &second))
		assert.Equal(t, first.String(), second.String())
	})

	t.Run("RecordsTelemetry", func(t *testing.T) {
		collector := telemetry.NewTimingCollector()
		ctx := telemetry.WithCollector(context.Background(), collector)

		file := &ast.File{Filename: "lib.c", Documents: []*ast.Document{
			{Sections: []*ast.Section{{Tag: "file", Name: "lib.c"}}},
		}}
		assert.NoError(t, New().Format(ctx, file, &bytes.Buffer{}))

		var report bytes.Buffer
		collector.Report(&report)
		assert.Contains(t, report.String(), "formatter.format lib.c")
		assert.Contains(t, report.String(), "(1 documents)")
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestFormatWriteError(t *testing.T) {
	file := &ast.File{Documents: []*ast.Document{{Sections: []*ast.Section{{Tag: "t"}}}}}
	err := New().Format(context.Background(), file, failingWriter{})
	assert.Error(t, err)
}
