package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type RenderCmd struct {
	Files  []string `arg:"" optional:"" name:"file" help:"C source files to read ('-' or none for standard input)."`
	Output string   `short:"o" placeholder:"FILE" help:"Write HTML to FILE instead of standard output."`
	Force  bool     `short:"f" help:"Overwrite the output file without confirmation."`
}

func (cmd *RenderCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, finish, err := globals.start(ctx, "render")
	if err != nil {
		return err
	}
	defer finish()

	ldr, err := globals.newLoader()
	if err != nil {
		return err
	}
	f := globals.newFormatter()

	var w io.Writer = ctx.Stdout
	if cmd.Output != "" {
		out, err := cmd.createOutput()
		if err != nil {
			return err
		}
		defer func() { _ = out.Close() }()
		w = out
	}

	// Files are processed to completion in order; output already written
	// stays when a later file fails.
	for _, name := range inputs(cmd.Files) {
		src, err := ldr.Read(runCtx, name)
		if err != nil {
			return globals.reportError(ctx, err, nil)
		}

		file, err := ldr.LoadBytes(runCtx, src.Filename, src.Data)
		if err != nil {
			return globals.reportError(ctx, err, src.Data)
		}

		if err := f.Format(runCtx, file, w); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if cmd.Output != "" {
		printSuccess(ctx.Stderr, fmt.Sprintf("Wrote %s", pathStyle.Render(cmd.Output)))
	}

	return nil
}

// createOutput opens the output file, asking before overwriting an existing one.
func (cmd *RenderCmd) createOutput() (*os.File, error) {
	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force {
		confirmed, err := promptYesNo(fmt.Sprintf("File %q already exists. Overwrite it?", cmd.Output))
		if err != nil {
			return nil, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			return nil, fmt.Errorf("output file %s already exists (use --force to overwrite)", cmd.Output)
		}
	} else if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to access output file: %w", err)
	}

	out, err := os.Create(cmd.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return out, nil
}
