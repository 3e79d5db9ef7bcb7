package errors_test

import (
	"context"
	"fmt"

	"github.com/robinvdvleuten/cdoc/errors"
	"github.com/robinvdvleuten/cdoc/parser"
)

// Example showing how to use TextFormatter for CLI output
func ExampleTextFormatter() {
	source := []byte("//! @struct point\nstruct point {\n  int x;\n")

	_, err := parser.ParseBytesWithFilename(context.Background(), "point.h", source)

	formatter := errors.NewTextFormatter(nil, errors.WithSource(source))
	fmt.Print(formatter.Format(err))
	// Output:
	// point.h:1: unterminated struct declaration (reached end of input)
	//
	//    //! @struct point
	//    struct point {
}

// Example showing how to use JSONFormatter for tooling
func ExampleJSONFormatter() {
	_, err := parser.ParseString(context.Background(), "//! @ x\n")

	formatter := errors.NewJSONFormatter()
	fmt.Println(formatter.Format(err))
	// Output:
	// {"type":"parse","message":"line 1: empty doc-comment tag","position":{"filename":"","line":1,"column":5},"details":{"kind":"empty tag"}}
}
