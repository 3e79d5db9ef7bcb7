package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/cdoc/formatter"
	"github.com/robinvdvleuten/cdoc/loader"
	"github.com/robinvdvleuten/cdoc/parser"
	"github.com/robinvdvleuten/cdoc/telemetry"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Config       kong.ConfigFlag `help:"Load flag defaults from a YAML file." placeholder:"FILE"`
	Style        string          `help:"Documentation comment style (${enum})." enum:"line,block" default:"line"`
	HeadingLevel int             `help:"Heading level used for section titles (1-6)." default:"3"`
	EscapeHTML   bool            `help:"Escape HTML special characters in documentation and source."`
	ErrorFormat  string          `help:"Error output format (${enum})." enum:"text,json" default:"text"`
	LogLevel     string          `help:"Log level (${enum})." enum:"debug,info,warn,error" default:"warn"`
	Telemetry    bool            `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Render RenderCmd `cmd:"" default:"withargs" help:"Render documentation comments as HTML (default)."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for inspecting extracted documentation."`
	Serve  ServeCmd  `cmd:"" help:"Start a live HTML preview server."`
}

var commandNames = []string{"render", "doctor", "serve"}

// RouteArgs prepares command-line arguments for parsing. When "--" comes before
// any command word, everything after it is a file for the default render
// command, even a file named like a command:
//
//	cdoc -- doctor  =>  cdoc render -- doctor
func RouteArgs(args []string) []string {
	for i, arg := range args {
		if slices.Contains(commandNames, arg) {
			return args
		}
		if arg == "--" {
			routed := make([]string, 0, len(args)+1)
			routed = append(routed, args[:i]...)
			routed = append(routed, "render")
			return append(routed, args[i:]...)
		}
	}
	return args
}

// Description is the text shown below the usage line.
const Description = "Extract documentation comments from C sources and render them as HTML.\n\n" +
	"With no FILE, or when FILE is -, read standard input."

// newLoader returns a loader configured from the global flags.
func (g *Globals) newLoader() (*loader.Loader, error) {
	style, err := parser.ParseStyle(g.Style)
	if err != nil {
		return nil, err
	}
	return loader.New(
		loader.WithParserOptions(parser.WithStyle(style)),
		loader.WithStdin(stdin),
	), nil
}

// newFormatter returns an HTML formatter configured from the global flags.
func (g *Globals) newFormatter() *formatter.Formatter {
	opts := []formatter.Option{formatter.WithHeadingLevel(g.HeadingLevel)}
	if g.EscapeHTML {
		opts = append(opts, formatter.WithEscapeHTML())
	}
	return formatter.New(opts...)
}

// start prepares the context for a command run: a console logger on stderr and,
// with --telemetry, a timing collector whose report is written by the returned
// function.
func (g *Globals) start(ctx *kong.Context, operation string) (context.Context, func(), error) {
	level, err := zerolog.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: ctx.Stderr, NoColor: !isTerminal()}).
		Level(level).
		With().
		Timestamp().
		Logger()
	runCtx := logger.WithContext(context.Background())

	if !g.Telemetry {
		return runCtx, func() {}, nil
	}

	collector := telemetry.NewTimingCollector()
	runCtx = telemetry.WithCollector(runCtx, collector)
	timer := collector.Start(operation)

	return runCtx, func() {
		timer.End()
		_, _ = fmt.Fprintln(ctx.Stderr)
		collector.Report(ctx.Stderr)
	}, nil
}
