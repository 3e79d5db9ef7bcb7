// Large C Source Generator
//
// This tool generates a large C source file with documentation comments for
// performance testing and profiling. It mixes every construct cdoc captures
// (structs with member documentation, functions, prototypes, macros, plain
// notes) with undocumented code the scanner has to skip.
//
// Usage:
//
//	go run main.go > large.c
//	go run main.go --size=20000000 --style=block > large.c
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

const defaultTargetSize = 10 * 1024 * 1024 // 10MB

var (
	nouns = []string{
		"buffer", "node", "list", "queue", "table", "entry", "stream",
		"parser", "token", "socket", "config", "cache", "arena", "vector",
	}

	verbs = []string{
		"init", "free", "push", "pop", "find", "insert", "remove",
		"reset", "flush", "read", "write", "grow", "clear", "copy",
	}

	types = []string{"int", "size_t", "char *", "double", "unsigned", "void *", "long"}

	sentences = []string{
		"Returns zero on success and a negative value on failure.",
		"The caller owns the returned memory.",
		"Not thread safe.",
		"Runs in constant time.",
		"Behaviour is undefined for NULL arguments.",
		"See the module overview for details.",
	}
)

var cli struct {
	Size  int    `help:"Target size in bytes." default:"10485760"`
	Style string `help:"Documentation comment style (${enum})." enum:"line,block" default:"line"`
	Seed  int64  `help:"Random seed, 0 for a random one." default:"0"`
}

type generator struct {
	w     *bufio.Writer
	rng   *rand.Rand
	block bool
	n     int
	docs  int
}

func main() {
	kong.Parse(&cli,
		kong.Name("generate_large_file"),
		kong.Description("Generate a large documented C source file."),
	)

	seed := cli.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	g := &generator{
		w:     bufio.NewWriter(os.Stdout),
		rng:   rand.New(rand.NewSource(seed)),
		block: cli.Style == "block",
	}

	g.writeHeader()

	for g.n < cli.Size {
		switch g.rng.Intn(10) {
		case 0, 1, 2: // 30% - Struct with member documentation
			g.writeStruct()
		case 3, 4: // 20% - Function definition
			g.writeFunction()
		case 5: // 10% - Prototype
			g.writePrototype()
		case 6: // 10% - Multi-line macro
			g.writeMacro()
		case 7: // 10% - Note without source
			g.writeNote()
		default: // 20% - Undocumented code
			g.writeUndocumented()
		}
	}

	if err := g.w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d documentation blocks (seed %d)\n", g.n, g.docs, seed)
}

func (g *generator) printf(format string, args ...any) {
	n, _ := fmt.Fprintf(g.w, format, args...)
	g.n += n
}

func (g *generator) pick(from []string) string {
	return from[g.rng.Intn(len(from))]
}

func (g *generator) name() string {
	return fmt.Sprintf("%s_%s_%d", g.pick(nouns), g.pick(verbs), g.rng.Intn(1000))
}

// writeDoc writes one documentation block in the selected style, indented by
// indent.
func (g *generator) writeDoc(indent string, lines ...string) {
	g.docs++

	if !g.block {
		for _, line := range lines {
			g.printf("%s//! %s\n", indent, line)
		}
		return
	}

	if len(lines) == 1 {
		g.printf("%s/*! %s */\n", indent, lines[0])
		return
	}
	g.printf("%s/*!\n", indent)
	for _, line := range lines {
		g.printf("%s * %s\n", indent, line)
	}
	g.printf("%s */\n", indent)
}

func (g *generator) writeHeader() {
	g.printf("/* Large C source for performance testing. */\n\n")
	g.printf("#include <stddef.h>\n#include <stdlib.h>\n\n")
}

func (g *generator) writeStruct() {
	name := g.name()
	g.writeDoc("", "@struct "+name, g.pick(sentences))
	g.printf("struct %s {\n", name)

	fields := g.rng.Intn(5) + 1
	for i := 0; i < fields; i++ {
		field := fmt.Sprintf("%s_%d", g.pick(nouns), i)
		if g.rng.Intn(2) == 0 {
			g.writeDoc("    ", "@member "+field, g.pick(sentences))
		}
		g.printf("    %s %s;\n", g.pick(types), field)
	}

	if g.rng.Intn(4) == 0 {
		g.printf("    struct {\n        int inner;\n    } nested;\n")
	}
	g.printf("};\n\n")
}

func (g *generator) writeFunction() {
	name := g.name()
	g.writeDoc("", "@function "+name, g.pick(sentences), "@param self", "@return status")
	g.printf("int %s(struct %s *self)\n{\n", name, g.pick(nouns))
	checks := g.rng.Intn(6) + 1
	for i := 0; i < checks; i++ {
		g.printf("    if (self == NULL) {\n        return -%d;\n    }\n", i+1)
	}
	g.printf("    return 0;\n}\n\n")
}

func (g *generator) writePrototype() {
	name := g.name()
	g.writeDoc("", "@function "+name, g.pick(sentences))
	g.printf("%s %s(%s a,\n    %s b);\n\n", g.pick(types), name, g.pick(types), g.pick(types))
}

func (g *generator) writeMacro() {
	name := strings.ToUpper(g.name())
	g.writeDoc("", "@macro "+name, g.pick(sentences))
	g.printf("#define %s(x) \\\n    do { \\\n        (void)(x); \\\n    } while (0)\n\n", name)
}

func (g *generator) writeNote() {
	g.writeDoc("", "@note", g.pick(sentences), "", g.pick(sentences))
	g.printf("\n")
}

func (g *generator) writeUndocumented() {
	g.printf("/* %s */\nstatic %s %s;\n\n", g.pick(sentences), g.pick(types), g.name())
}
