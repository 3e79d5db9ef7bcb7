// Package loader reads C source files fully into memory and parses their
// documentation.
//
// Every input is read in one piece before parsing starts; the parsed strings are
// views into that buffer. The name "-" stands for standard input, which is read
// once and reported as "<stdin>" in positions and messages.
//
// Example usage:
//
//	ldr := loader.New(loader.WithParserOptions(parser.WithStyle(parser.StyleBlock)))
//	files, err := ldr.LoadAll(ctx, []string{"list.h", "list.c"})
package loader

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/cdoc/ast"
	"github.com/robinvdvleuten/cdoc/parser"
	"github.com/robinvdvleuten/cdoc/telemetry"
)

const (
	// StdinArg is the file argument selecting standard input.
	StdinArg = "-"

	// StdinName is the filename used for documents read from standard input.
	StdinName = "<stdin>"
)

// ReadError reports an input that could not be read.
type ReadError struct {
	Filename string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Filename, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Loader reads inputs and hands them to the parser.
//
// Configure the loader using functional options passed to New:
//
//	ldr := New(WithStdin(r))
type Loader struct {
	// ParserOptions are passed to every parse.
	ParserOptions []parser.Option

	// Stdin is read for the "-" argument. Defaults to os.Stdin.
	Stdin io.Reader
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithParserOptions appends options used for every parsed input.
func WithParserOptions(opts ...parser.Option) Option {
	return func(l *Loader) {
		l.ParserOptions = append(l.ParserOptions, opts...)
	}
}

// WithStdin replaces the reader used for the "-" argument.
func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.Stdin = r
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		Stdin: os.Stdin,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Source is the complete content of one input.
type Source struct {
	Filename string
	Data     []byte
}

// Read reads a file fully into memory. The name "-" reads standard input.
func (l *Loader) Read(ctx context.Context, filename string) (*Source, error) {
	name := filename
	if filename == StdinArg {
		name = StdinName
	}

	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("loader.read %s", name))
	defer timer.End()

	var data []byte
	var err error
	if filename == StdinArg {
		data, err = io.ReadAll(l.Stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, &ReadError{Filename: name, Err: err}
	}

	zerolog.Ctx(ctx).Debug().Str("file", name).Int("bytes", len(data)).Msg("read input")

	return &Source{Filename: name, Data: data}, nil
}

// Load reads and parses a single file. The name "-" reads standard input.
func (l *Loader) Load(ctx context.Context, filename string) (*ast.File, error) {
	src, err := l.Read(ctx, filename)
	if err != nil {
		return nil, err
	}
	return l.LoadBytes(ctx, src.Filename, src.Data)
}

// LoadReader reads r to the end and parses its contents as filename.
func (l *Loader) LoadReader(ctx context.Context, filename string, r io.Reader) (*ast.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Filename: filename, Err: err}
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes parses data already in memory.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*ast.File, error) {
	return parser.ParseBytesWithFilename(ctx, filename, data, l.ParserOptions...)
}

// LoadAll loads every file in order and stops at the first failure. No
// arguments means standard input.
func (l *Loader) LoadAll(ctx context.Context, filenames []string) ([]*ast.File, error) {
	if len(filenames) == 0 {
		filenames = []string{StdinArg}
	}

	files := make([]*ast.File, 0, len(filenames))
	for _, filename := range filenames {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		file, err := l.Load(ctx, filename)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}
