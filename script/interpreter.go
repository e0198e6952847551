package script

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/wire3d"
)

// State is the interpreter state that persists across commands.
type State struct {
	// Transform is the running 4x4 transform. New transforms premultiply
	// it, so they take effect in the order they were issued.
	Transform *wire3d.Matrix

	// Edges is the accumulated edge list.
	Edges *wire3d.EdgeList
}

// NewState returns an identity transform and an empty edge list.
func NewState() *State {
	return &State{
		Transform: wire3d.Identity(4),
		Edges:     wire3d.NewEdgeList(),
	}
}

// Reset restores the state NewState returns.
func (s *State) Reset() {
	s.Transform.SetIdentity()
	s.Edges.Reset()
}

// Stats counts what a run did.
type Stats struct {
	Executed int // commands carried out, including quit
	Skipped  int // unknown keywords
	Failed   int // commands dropped because of a recovered error
}

// Interpreter runs scripts against a State and a Sink.
type Interpreter struct {
	state *State
	sink  Sink
	opts  options
	log   *slog.Logger

	diags []error
	stats Stats
}

// NewInterpreter creates an interpreter. A nil st starts from NewState;
// a nil sink discards display and save output.
func NewInterpreter(st *State, sink Sink, opts ...Option) *Interpreter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if st == nil {
		st = NewState()
	}
	if sink == nil {
		sink = Discard
	}
	log := o.logger
	if log == nil {
		log = wire3d.Logger()
	}
	return &Interpreter{state: st, sink: sink, opts: o, log: log}
}

// Run interprets a whole script with a new Interpreter.
func Run(r io.Reader, st *State, sink Sink, opts ...Option) error {
	return NewInterpreter(st, sink, opts...).Run(r)
}

// State returns the interpreter state.
func (in *Interpreter) State() *State {
	return in.state
}

// Diagnostics returns the recovered problems, in script order.
func (in *Interpreter) Diagnostics() []error {
	return in.diags
}

// Stats returns the command counts accumulated so far.
func (in *Interpreter) Stats() Stats {
	return in.stats
}

// Run interprets r until quit or end of input.
//
// Per-command problems are recorded in Diagnostics and the run continues,
// unless the interpreter is strict. I/O failures abort with an [*IOError].
func (in *Interpreter) Run(r io.Reader) error {
	p := NewParser(r)
	for {
		cmd, err := p.Next()
		if errors.Is(err, io.EOF) {
			in.log.Debug("script: end of input", "lines", p.Line())
			return nil
		}
		if err != nil {
			if !in.tolerate(err) {
				return err
			}
			// An invalid axis still leaves a runnable rotate about Z.
			if !errors.Is(err, wire3d.ErrInvalidAxis) {
				continue
			}
		}

		quit, err := in.Execute(cmd)
		if err != nil {
			if !in.tolerate(err) {
				return err
			}
			continue
		}
		if quit {
			in.log.Debug("script: quit", "line", cmd.Line)
			return nil
		}
	}
}

// tolerate records a per-command error and reports whether the run may
// continue. I/O errors never continue.
func (in *Interpreter) tolerate(err error) bool {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return false
	}
	in.diags = append(in.diags, err)
	in.log.Warn("script: recovered", "line", pe.Line, "command", pe.Command, "err", pe.Err)

	if errors.Is(err, wire3d.ErrInvalidAxis) {
		if in.opts.strict {
			in.stats.Failed++
			return false
		}
		in.log.Warn("script: rotating about z", "line", pe.Line)
		return true
	}
	in.stats.Failed++
	return !in.opts.strict
}

// Execute carries out one command. It reports whether the command was quit.
// Errors confined to the command are [*ParseError]s; sink failures are
// [*IOError]s.
func (in *Interpreter) Execute(cmd Command) (bool, error) {
	if len(cmd.Args) < cmd.Type.Arity() {
		return false, in.cmdError(cmd, fmt.Errorf("%w: want %d numbers, got %d", ErrMalformedArguments, cmd.Type.Arity(), len(cmd.Args)))
	}
	in.log.Debug("script: command", "line", cmd.Line, "command", cmd.Type, "args", cmd.Args)

	st := in.state
	a := cmd.Args
	switch cmd.Type {
	case CmdLine:
		st.Edges.AddEdge(a[0], a[1], a[2], a[3], a[4], a[5])

	case CmdCircle:
		if err := st.Edges.AddCircle(a[0], a[1], a[2], a[3], in.opts.step); err != nil {
			return false, in.cmdError(cmd, err)
		}

	case CmdHermite, CmdBezier:
		basis := wire3d.Hermite
		if cmd.Type == CmdBezier {
			basis = wire3d.Bezier
		}
		if err := st.Edges.AddCurve(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7], in.opts.step, basis); err != nil {
			return false, in.cmdError(cmd, err)
		}

	case CmdScale:
		in.premultiply(wire3d.Scale(a[0], a[1], a[2]))

	case CmdMove:
		in.premultiply(wire3d.Translate(a[0], a[1], a[2]))

	case CmdRotate:
		in.premultiply(wire3d.Rotate(cmd.Axis, wire3d.Radians(a[0])))

	case CmdIdent:
		st.Transform.SetIdentity()

	case CmdApply:
		if err := st.Edges.Apply(st.Transform); err != nil {
			return false, in.cmdError(cmd, err)
		}

	case CmdDisplay:
		in.draw()
		in.log.Info("script: display", "line", cmd.Line, "segments", st.Edges.Segments())
		if err := in.sink.Present(); err != nil {
			return false, &IOError{Op: "display", Err: err}
		}

	case CmdSave:
		in.draw()
		in.log.Info("script: save", "line", cmd.Line, "file", cmd.Filename, "segments", st.Edges.Segments())
		if err := in.sink.Persist(cmd.Filename); err != nil {
			return false, &IOError{Op: "save", Path: cmd.Filename, Err: err}
		}

	case CmdQuit:
		in.stats.Executed++
		return true, nil

	case CmdSkip:
		in.stats.Skipped++
		err := &ParseError{Line: cmd.Line, Command: cmd.Keyword, Err: ErrUnknownCommand}
		in.diags = append(in.diags, err)
		in.log.Warn("script: skipping unknown command", "line", cmd.Line, "command", cmd.Keyword)
		return false, nil

	default:
		return false, in.cmdError(cmd, fmt.Errorf("%w: command type %d", ErrUnknownCommand, uint8(cmd.Type)))
	}

	in.stats.Executed++
	return false, nil
}

// premultiply sets transform = m × transform.
func (in *Interpreter) premultiply(m *wire3d.Matrix) {
	// 4x4 × 4x4 cannot mismatch.
	_ = wire3d.Multiply(m, in.state.Transform)
}

func (in *Interpreter) draw() {
	in.sink.Clear()
	in.sink.DrawSegments(in.state.Edges, in.opts.color)
}

func (in *Interpreter) cmdError(cmd Command, err error) error {
	name := cmd.Keyword
	if name == "" {
		name = cmd.Type.String()
	}
	return &ParseError{Line: cmd.Line, Command: name, Err: err}
}
