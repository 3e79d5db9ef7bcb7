package formatter

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/robinvdvleuten/cdoc/parser"
)

func BenchmarkFormat(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("Documents%d", n), func(b *testing.B) {
			var sb strings.Builder
			for i := 0; i < n; i++ {
				fmt.Fprintf(&sb, "//! @struct s%d\n//! Structure number %d.\nstruct s%d {\n    int a;\n    int b;\n};\n\n", i, i, i)
			}

			file, err := parser.ParseString(context.Background(), sb.String())
			if err != nil {
				b.Fatal(err)
			}

			f := New()
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				var buf bytes.Buffer
				if err := f.Format(context.Background(), file, &buf); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
