package script

import (
	"errors"
	"fmt"
)

// Script errors.
var (
	// ErrMalformedArguments is returned when an argument line does not hold
	// the expected number or kind of values.
	ErrMalformedArguments = errors.New("script: malformed arguments")

	// ErrUnknownCommand marks the diagnostic recorded for a skipped keyword.
	ErrUnknownCommand = errors.New("script: unknown command")
)

// ParseError reports a problem with a single command.
type ParseError struct {
	Line    int    // 1-based line of the command keyword
	Command string // keyword as written
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("script: line %d: %s: %v", e.Line, e.Command, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a failure reading the script or writing output.
// It always aborts the run.
type IOError struct {
	Op   string // "open", "read", "display" or "save"
	Path string // save target, empty otherwise
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("script: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("script: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
