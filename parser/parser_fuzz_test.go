package parser

import (
	"context"
	"testing"
)

func FuzzParser(f *testing.F) {
	seeds := []string{
		"",
		"\n\n\n",
		"//! @function foo\n//! Does a thing.\nint foo(void);\n",
		"//! @struct foo\nstruct foo {\n  int x;\n};\n",
		"//! @function f\nint f(int x) {\n  return x;\n}\n",
		"//! @macro X\n#define X(a) \\\n  (a + 1)\n",
		"//! @struct p\nstruct p {\n  //! @member x\n  int x;\n};\n",
		"//! @\n",
		"//! @note a b\n",
		"//! @struct s\nstruct s {\n",
		"//! words without tags\n",
		"/*! @macro M */\n#define M 1\n",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed), false)
		f.Add([]byte(seed), true)
	}

	f.Fuzz(func(t *testing.T, data []byte, block bool) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parser panicked on input %q: %v", data, r)
			}
		}()

		style := StyleLine
		if block {
			style = StyleBlock
		}

		file, err := ParseBytes(context.Background(), data, WithStyle(style))
		if err != nil {
			return
		}
		if file == nil {
			t.Fatal("ParseBytes returned nil file with nil error")
		}

		for _, d := range file.Documents {
			if len(d.Sections) == 0 {
				t.Fatalf("document without sections at %s", d.Pos)
			}
			for _, s := range d.Sections {
				if s.Tag == "" {
					t.Fatalf("section with empty tag at %s", s.Pos)
				}
			}
		}
	})
}
