package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func generateSource(blocks int) []byte {
	var sb strings.Builder
	for i := 0; i < blocks; i++ {
		fmt.Fprintf(&sb, "//! @struct s%d\n//! Structure number %d.\nstruct s%d {\n", i, i, i)
		sb.WriteString("    //! @member a\n    int a;\n    int b;\n};\n\n")
		fmt.Fprintf(&sb, "//! @function f%d\n//! @param x\nint f%d(int x) {\n    return x;\n}\n\n", i, i)
		fmt.Fprintf(&sb, "//! @macro M%d\n#define M%d(a) \\\n    ((a) + %d)\n\n", i, i, i)
	}
	return []byte(sb.String())
}

func BenchmarkParse(b *testing.B) {
	data := generateSource(1000)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ParseBytes(context.Background(), data)
		if err != nil {
			b.Fatal(err)
		}
	}
}
