// Package script interprets the wire3d scene language.
//
// A script is read line by line. Each directive is a keyword on its own
// line, followed for most keywords by one line of arguments:
//
//	line
//	0 0 0 100 100 0
//	rotate
//	z 45
//	apply
//	save
//	out.png
//	quit
//
// Transform commands (scale, move, rotate, ident) update a running 4x4
// transform; shape commands (line, circle, hermite, bezier) append to an
// edge list; apply bakes the transform into the edges; display and save
// hand the edges to a [Sink].
//
// # Errors
//
// Problems with a single command are recovered: the command is skipped,
// a diagnostic is recorded, and interpretation continues. Unknown keywords
// are skipped the same way. Failures reading the script or writing output
// abort the run with an [*IOError].
package script

import (
	"github.com/gogpu/wire3d"
)

// CommandType identifies a script directive.
type CommandType uint8

const (
	// Shape commands
	CmdLine    CommandType = iota // Append one segment
	CmdCircle                     // Tessellate a circle
	CmdHermite                    // Tessellate a Hermite curve
	CmdBezier                     // Tessellate a Bezier curve

	// Transform commands
	CmdScale  // Premultiply a scale matrix
	CmdMove   // Premultiply a translation matrix
	CmdRotate // Premultiply a rotation matrix
	CmdIdent  // Reset the transform to identity

	// Edge and output commands
	CmdApply   // Multiply the transform into every edge point
	CmdDisplay // Draw edges and present them
	CmdSave    // Draw edges and persist them to a file
	CmdQuit    // Stop interpreting

	// CmdSkip is an unrecognised keyword. It is not an error: the line is
	// consumed and interpretation continues.
	CmdSkip
)

// commandKeywords maps CommandType values to their script keyword.
var commandKeywords = [...]string{
	CmdLine:    "line",
	CmdCircle:  "circle",
	CmdHermite: "hermite",
	CmdBezier:  "bezier",
	CmdScale:   "scale",
	CmdMove:    "move",
	CmdRotate:  "rotate",
	CmdIdent:   "ident",
	CmdApply:   "apply",
	CmdDisplay: "display",
	CmdSave:    "save",
	CmdQuit:    "quit",
	CmdSkip:    "skip",
}

// commandArity is the number of numeric arguments each command takes.
// Rotate's axis letter is counted separately.
var commandArity = [...]int{
	CmdLine:    6,
	CmdCircle:  4,
	CmdHermite: 8,
	CmdBezier:  8,
	CmdScale:   3,
	CmdMove:    3,
	CmdRotate:  1,
}

// keywordTypes is the dispatch table from keyword to command.
var keywordTypes = func() map[string]CommandType {
	m := make(map[string]CommandType, len(commandKeywords))
	for ct, kw := range commandKeywords {
		if CommandType(ct) != CmdSkip {
			m[kw] = CommandType(ct)
		}
	}
	return m
}()

// String returns the script keyword of the command type.
func (c CommandType) String() string {
	if int(c) < len(commandKeywords) {
		return commandKeywords[c]
	}
	return "unknown"
}

// Arity returns the number of numeric arguments the command takes.
func (c CommandType) Arity() int {
	if int(c) < len(commandArity) {
		return commandArity[c]
	}
	return 0
}

// NeedsArgs reports whether the command consumes an argument line.
func (c CommandType) NeedsArgs() bool {
	return c.Arity() > 0 || c == CmdSave
}

// LookupKeyword returns the command type for an exact keyword, or CmdSkip.
func LookupKeyword(keyword string) CommandType {
	if ct, ok := keywordTypes[keyword]; ok {
		return ct
	}
	return CmdSkip
}

// Command is one parsed directive.
type Command struct {
	// Type identifies the directive.
	Type CommandType

	// Line is the 1-based line number of the keyword.
	Line int

	// Keyword is the keyword as written, after trimming.
	Keyword string

	// Args holds the numeric arguments, Type.Arity() of them.
	Args []float64

	// Axis is the rotation axis of a rotate command.
	Axis wire3d.Axis

	// Filename is the target of a save command.
	Filename string
}
