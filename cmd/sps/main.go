/*
  main.go
  Description: sps, a batch spreadsheet editor
  -----------------------------------------------------------------------------

  Started on  <Fri Jul 31 2026 Carlos Linares Lopez>
  -----------------------------------------------------------------------------

  Made by Carlos Linares Lopez
  Login   <clinares@atlas>
*/

// sps reads a delimited text table, runs an ordered command script against
// it, and writes the table back to the same file. It prints nothing on
// success; on failure it writes exactly one diagnostic line to stderr and
// exits 1.
package main

// imports
// ----------------------------------------------------------------------------
import (
	"flag" // arg parsing
	"fmt"  // printing msgs
	"io"   // discarding flag's own usage output
	"os"   // operating system services

	"github.com/clinaresl/sps/codec"
	"github.com/clinaresl/sps/dispatch"
	"github.com/clinaresl/sps/errs"
	"github.com/clinaresl/sps/fstools"
	"github.com/clinaresl/sps/script"
)

// global variables
// ----------------------------------------------------------------------------
const EXIT_SUCCESS int = 0 // exit with success
const EXIT_FAILURE int = 1 // exit with failure

// defaultDelims is substituted when -d is not given: a single space.
const defaultDelims = " "

var delims string // the delimiter set, -d

// functions
// ----------------------------------------------------------------------------

// fail writes a single "sps: <message>" diagnostic to stderr and exits with
// EXIT_FAILURE. It never returns.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "sps: %v\n", err)
	os.Exit(EXIT_FAILURE)
}

// run parses argv, reads FILE, executes SCRIPT against it, and writes the
// table back. It returns an error rather than exiting directly so that
// main can recover a panic and report it through the same path.
//
// The flag set is built with ContinueOnError rather than using the
// flag.CommandLine/flag.Parse default (ExitOnError), so that a malformed
// flag is reported through the same single-line "sps: <message>" path as
// every other argv error, instead of flag's own usage text and os.Exit(2).
func run() error {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&delims, "d", defaultDelims, "set of bytes recognized as cell delimiters; the first byte is also the one used to separate cells on write")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return fmt.Errorf("-d: %v: %w", err, errs.ErrBadDelimiterSet)
	}

	args := fs.Args()
	switch {
	case len(args) < 2:
		return fmt.Errorf("usage: sps [-d DELIMS] SCRIPT FILE: %w", errs.ErrTooFewArguments)
	case len(args) > 2:
		return fmt.Errorf("usage: sps [-d DELIMS] SCRIPT FILE: %w", errs.ErrTooManyArguments)
	}
	if len(delims) == 0 {
		return fmt.Errorf("-d: %w", errs.ErrBadDelimiterSet)
	}

	scriptText, filename := args[0], args[1]

	if ok, _ := fstools.IsRegularFile(filename); !ok {
		return fmt.Errorf("%s: not a regular file: %w", filename, errs.ErrFileOpenFailed)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("%s: %v: %w", filename, err, errs.ErrFileOpenFailed)
	}

	tbl, err := codec.Decode(data, []byte(delims))
	if err != nil {
		return err
	}

	cmds, err := script.Parse(scriptText)
	if err != nil {
		return err
	}

	if err := dispatch.New(tbl).Run(cmds); err != nil {
		return err
	}

	out := codec.Encode(tbl, []byte(delims))
	if err := os.WriteFile(filename, out, 0644); err != nil {
		return fmt.Errorf("%s: %v: %w", filename, err, errs.ErrFileOpenFailed)
	}

	return nil
}

// Main body
func main() {
	defer func() {
		// A recovered panic is still reported through the same single-line
		// diagnostic, never a Go stack trace on stderr.
		if r := recover(); r != nil {
			fail(fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := run(); err != nil {
		fail(err)
	}
	os.Exit(EXIT_SUCCESS)
}
