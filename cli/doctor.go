package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/cdoc/ast"
	"github.com/robinvdvleuten/cdoc/output"
)

// DoctorCmd provides doctor utilities for inspecting extracted documentation.
type DoctorCmd struct {
	Sections SectionsCmd `cmd:"" help:"List every documentation section as a table."`
	Dump     DumpCmd     `cmd:"" help:"Dump the parsed documents as Go values."`
}

// SectionsCmd lists the sections found in C sources.
type SectionsCmd struct {
	Files []string `arg:"" optional:"" name:"file" help:"C source files to read ('-' or none for standard input)."`
}

// Run executes the sections command.
func (cmd *SectionsCmd) Run(ctx *kong.Context, globals *Globals) error {
	files, err := globals.loadFiles(ctx, "doctor sections", cmd.Files)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, file := range files {
		for _, doc := range file.Documents {
			for _, section := range doc.Sections {
				rows = append(rows, []string{
					section.Pos.String(),
					ast.KindOf(section.Tag).String(),
					section.Tag,
					nameCell(section),
					strconv.Itoa(len(section.Body)),
					strconv.Itoa(len(doc.SourceText())),
				})
			}
		}
	}

	writeTable(ctx.Stdout, []string{"POSITION", "KIND", "TAG", "NAME", "BODY", "SOURCE"}, rows)
	return nil
}

func nameCell(section *ast.Section) string {
	if !section.HasName() {
		return "-"
	}
	return section.Name
}

// writeTable writes rows aligned on display width, so names in any script
// line up.
func writeTable(w io.Writer, header []string, rows [][]string) {
	styles := output.NewStyles(w)

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for i, h := range header {
		cell := h
		if i < len(header)-1 {
			cell = runewidth.FillRight(h, widths[i]+2)
		}
		_, _ = fmt.Fprint(w, styles.Keyword(cell))
	}
	_, _ = fmt.Fprintln(w)

	cellStyles := []func(string) string{styles.FilePath, styles.Dim, styles.Tag, styles.Name}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(row)-1 {
				cell = runewidth.FillRight(cell, widths[i]+2)
			}
			if i < len(cellStyles) {
				cell = cellStyles[i](cell)
			}
			_, _ = fmt.Fprint(w, cell)
		}
		_, _ = fmt.Fprintln(w)
	}
}

// DumpCmd prints the parsed documents.
type DumpCmd struct {
	Files []string `arg:"" optional:"" name:"file" help:"C source files to read ('-' or none for standard input)."`
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	files, err := globals.loadFiles(ctx, "doctor dump", cmd.Files)
	if err != nil {
		return err
	}

	printer := repr.New(ctx.Stdout, repr.Indent("  "), repr.OmitEmpty(true))
	for _, file := range files {
		printer.Println(file)
	}
	return nil
}

// loadFiles loads every input, reporting the first failure.
func (g *Globals) loadFiles(ctx *kong.Context, operation string, names []string) ([]*ast.File, error) {
	runCtx, finish, err := g.start(ctx, operation)
	if err != nil {
		return nil, err
	}
	defer finish()

	ldr, err := g.newLoader()
	if err != nil {
		return nil, err
	}

	var files []*ast.File
	for _, name := range inputs(names) {
		src, err := ldr.Read(runCtx, name)
		if err != nil {
			return nil, g.reportError(ctx, err, nil)
		}

		file, err := ldr.LoadBytes(runCtx, src.Filename, src.Data)
		if err != nil {
			return nil, g.reportError(ctx, err, src.Data)
		}
		files = append(files, file)
	}

	return files, nil
}
