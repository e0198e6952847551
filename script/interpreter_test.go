package script

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/wire3d"
)

const tol = 1e-9

// recordingSink records the calls made by display and save.
type recordingSink struct {
	calls      []string
	colors     []wire3d.Color
	segments   []int
	persisted  []string
	presentErr error
	persistErr error
}

func (s *recordingSink) Clear() { s.calls = append(s.calls, "clear") }

func (s *recordingSink) DrawSegments(e *wire3d.EdgeList, c wire3d.Color) {
	s.calls = append(s.calls, "draw")
	s.colors = append(s.colors, c)
	s.segments = append(s.segments, e.Segments())
}

func (s *recordingSink) Present() error {
	s.calls = append(s.calls, "present")
	return s.presentErr
}

func (s *recordingSink) Persist(name string) error {
	s.calls = append(s.calls, "persist")
	s.persisted = append(s.persisted, name)
	return s.persistErr
}

func run(t *testing.T, src string, opts ...Option) (*Interpreter, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	in := NewInterpreter(nil, sink, opts...)
	require.NoError(t, in.Run(strings.NewReader(src)))
	return in, sink
}

func assertPoint(t *testing.T, want, got wire3d.Point3) {
	t.Helper()
	assert.True(t, got.ApproxEqual(want, tol), "got %v, want %v", got, want)
}

func TestIdentResetsTransform(t *testing.T) {
	scripts := []string{
		"ident\n",
		"scale\n2 3 4\nident\n",
		"move\n1 2 3\nrotate\nx 33\nident\n",
		"rotate\ny 10\nscale\n-1 5 0\nmove\n9 9 9\nident\n",
		"ident\nmove\n1 1 1\nident\n",
	}
	for _, src := range scripts {
		in, _ := run(t, src)
		assert.True(t, in.State().Transform.IsIdentity(0), "transform after %q:\n%v", src, in.State().Transform)
	}
}

func TestRotateXKeepsXAxisPoint(t *testing.T) {
	in, _ := run(t, "line\n1 0 0 1 0 0\nident\nrotate\nx 180\napply\n")
	p, q := in.State().Edges.Segment(0)
	assertPoint(t, wire3d.Pt3(1, 0, 0), p)
	assertPoint(t, wire3d.Pt3(1, 0, 0), q)
}

func TestRotateYFlipsXAxisPoint(t *testing.T) {
	in, _ := run(t, "line\n1 0 0 1 0 0\nident\nrotate\ny 180\napply\n")
	p, q := in.State().Edges.Segment(0)
	assertPoint(t, wire3d.Pt3(-1, 0, 0), p)
	assertPoint(t, wire3d.Pt3(-1, 0, 0), q)
}

func TestRotateConvertsDegrees(t *testing.T) {
	in, _ := run(t, "line\n1 0 0 0 0 0\nrotate\nz 90\napply\n")
	p, _ := in.State().Edges.Segment(0)
	assertPoint(t, wire3d.Pt3(0, 1, 0), p)
}

func TestCircleCommand(t *testing.T) {
	in, _ := run(t, "circle\n0 0 0 1\n")
	edges := in.State().Edges
	require.Equal(t, 100, edges.Segments())

	first, _ := edges.Segment(0)
	_, last := edges.Segment(edges.Segments() - 1)
	assertPoint(t, first, last)
	for i := range edges.Len() {
		p := edges.Point(i)
		assert.InDelta(t, 1, p.X*p.X+p.Y*p.Y, tol)
	}
}

func TestCircleStepOption(t *testing.T) {
	in, _ := run(t, "circle\n0 0 0 1\nhermite\n0 0 1 1 1 0 1 0\n", WithStep(0.1))
	assert.Equal(t, 20, in.State().Edges.Segments())
}

func TestScaleApply(t *testing.T) {
	in, _ := run(t, "line\n0 0 0 1 1 1\nscale\n2 2 2\napply\n")
	p, q := in.State().Edges.Segment(0)
	assertPoint(t, wire3d.Pt3(0, 0, 0), p)
	assertPoint(t, wire3d.Pt3(2, 2, 2), q)
}

func TestQuitOnly(t *testing.T) {
	in, sink := run(t, "quit\nline\n1 2 3 4 5 6\ndisplay\n")
	assert.Equal(t, 0, in.State().Edges.Len())
	assert.True(t, in.State().Transform.IsIdentity(0))
	assert.Empty(t, sink.calls)
	assert.Empty(t, in.Diagnostics())
	assert.Equal(t, Stats{Executed: 1}, in.Stats())
}

func TestEmptyScript(t *testing.T) {
	in, _ := run(t, "")
	assert.Equal(t, 0, in.State().Edges.Len())
	assert.True(t, in.State().Transform.IsIdentity(0))
}

func TestBezierCollinearScript(t *testing.T) {
	in, _ := run(t, "bezier\n0 0 10 10 20 20 30 30\n")
	edges := in.State().Edges
	require.Equal(t, 100, edges.Segments())
	for i := range edges.Len() {
		p := edges.Point(i)
		assert.InDelta(t, p.X, p.Y, 1e-9, "point %d = %v", i, p)
		assert.True(t, p.X >= -tol && p.X <= 30+tol, "point %d = %v outside control hull", i, p)
	}
}

func TestCompositionOrderMoveThenScale(t *testing.T) {
	// Each new matrix premultiplies the running transform, so the move
	// happens first: (0,0,0) -> (1,0,0) -> (2,0,0).
	in, _ := run(t, "line\n0 0 0 0 0 0\nmove\n1 0 0\nscale\n2 2 2\napply\n")
	p, _ := in.State().Edges.Segment(0)
	assertPoint(t, wire3d.Pt3(2, 0, 0), p)

	want := wire3d.Identity(4)
	require.NoError(t, wire3d.Multiply(wire3d.Translate(1, 0, 0), want))
	require.NoError(t, wire3d.Multiply(wire3d.Scale(2, 2, 2), want))
	assert.True(t, in.State().Transform.Equal(want, 0))
}

func TestCompositionOrderScaleThenMove(t *testing.T) {
	in, _ := run(t, "line\n0 0 0 0 0 0\nscale\n2 2 2\nmove\n1 0 0\napply\n")
	p, _ := in.State().Edges.Segment(0)
	assertPoint(t, wire3d.Pt3(1, 0, 0), p)
}

func TestApplyOnlyTransformsExistingEdges(t *testing.T) {
	in, _ := run(t, "line\n1 1 1 1 1 1\nmove\n10 0 0\napply\nline\n1 1 1 1 1 1\n")
	edges := in.State().Edges
	p0, _ := edges.Segment(0)
	p1, _ := edges.Segment(1)
	assertPoint(t, wire3d.Pt3(11, 1, 1), p0)
	assertPoint(t, wire3d.Pt3(1, 1, 1), p1)
}

func TestApplyTwiceAppliesTwice(t *testing.T) {
	in, _ := run(t, "line\n0 0 0 0 0 0\nmove\n1 0 0\napply\napply\n")
	p, _ := in.State().Edges.Segment(0)
	assertPoint(t, wire3d.Pt3(2, 0, 0), p)
}

func TestDisplayAndSaveUseSink(t *testing.T) {
	in, sink := run(t, "line\n0 0 0 5 5 0\ndisplay\nsave\nout.png\n")
	assert.Equal(t, []string{"clear", "draw", "present", "clear", "draw", "persist"}, sink.calls)
	assert.Equal(t, []wire3d.Color{wire3d.Magenta, wire3d.Magenta}, sink.colors)
	assert.Equal(t, []int{1, 1}, sink.segments)
	assert.Equal(t, []string{"out.png"}, sink.persisted)

	// Neither display nor save mutates the edges.
	assert.Equal(t, 2, in.State().Edges.Len())
}

func TestColorOption(t *testing.T) {
	_, sink := run(t, "display\n", WithColor(wire3d.White))
	assert.Equal(t, []wire3d.Color{wire3d.White}, sink.colors)
}

func TestUnknownCommandSkipped(t *testing.T) {
	in, _ := run(t, "bogus\nline\n0 0 0 1 1 1\nalso bogus\n", WithStrict(true))
	assert.Equal(t, 1, in.State().Edges.Segments())
	assert.Equal(t, 2, in.Stats().Skipped)
	require.Len(t, in.Diagnostics(), 2)
	assert.ErrorIs(t, in.Diagnostics()[0], ErrUnknownCommand)

	var pe *ParseError
	require.ErrorAs(t, in.Diagnostics()[1], &pe)
	assert.Equal(t, 4, pe.Line)
	assert.Equal(t, "also bogus", pe.Command)
}

func TestMalformedCommandRecovered(t *testing.T) {
	in, _ := run(t, "line\n1 2 3\nline\n0 0 0 1 1 1\nscale\nx y z\n")
	assert.Equal(t, 1, in.State().Edges.Segments(), "malformed line must not append zero-filled edges")
	assert.True(t, in.State().Transform.IsIdentity(0))
	assert.Equal(t, Stats{Executed: 1, Failed: 2}, in.Stats())

	require.Len(t, in.Diagnostics(), 2)
	for _, d := range in.Diagnostics() {
		assert.ErrorIs(t, d, ErrMalformedArguments)
	}
}

func TestMalformedCommandStrict(t *testing.T) {
	sink := &recordingSink{}
	in := NewInterpreter(nil, sink, WithStrict(true))
	err := in.Run(strings.NewReader("line\n0 0 0 1 1 1\nline\n1 2\nline\n2 2 2 3 3 3\n"))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, 1, in.State().Edges.Segments())
}

func TestShellOperatorsAreMalformed(t *testing.T) {
	for _, args := range []string{"2 2 2 | 9", "2 2 2 ; 7 7", "\"2\" '2' 2"} {
		t.Run(args, func(t *testing.T) {
			in, _ := run(t, "line\n0 0 0 1 1 1\nscale\n"+args+"\napply\n")
			_, q := in.State().Edges.Segment(0)
			assertPoint(t, wire3d.Pt3(1, 1, 1), q)
			require.Len(t, in.Diagnostics(), 1)
			assert.ErrorIs(t, in.Diagnostics()[0], ErrMalformedArguments)

			err := NewInterpreter(nil, nil, WithStrict(true)).Run(strings.NewReader("scale\n" + args + "\n"))
			assert.ErrorIs(t, err, ErrMalformedArguments)
		})
	}
}

func TestInvalidAxisFallsBackToZ(t *testing.T) {
	in, _ := run(t, "line\n1 0 0 1 0 0\nrotate\nw 90\napply\n")
	p, _ := in.State().Edges.Segment(0)
	assertPoint(t, wire3d.Pt3(0, 1, 0), p)

	require.Len(t, in.Diagnostics(), 1)
	assert.ErrorIs(t, in.Diagnostics()[0], wire3d.ErrInvalidAxis)
	assert.Equal(t, 0, in.Stats().Failed)
}

func TestInvalidAxisStrict(t *testing.T) {
	in := NewInterpreter(nil, nil, WithStrict(true))
	err := in.Run(strings.NewReader("rotate\nw 90\n"))
	require.ErrorIs(t, err, wire3d.ErrInvalidAxis)
	assert.True(t, in.State().Transform.IsIdentity(0))
}

func TestMissingArgumentLineAtEnd(t *testing.T) {
	in, _ := run(t, "line\n0 0 0 1 1 1\ncircle\n")
	assert.Equal(t, 1, in.State().Edges.Segments())
	require.Len(t, in.Diagnostics(), 1)
}

func TestSaveFailureIsFatal(t *testing.T) {
	sink := &recordingSink{persistErr: errors.New("read-only filesystem")}
	in := NewInterpreter(nil, sink)
	err := in.Run(strings.NewReader("save\n/nope/out.png\nline\n0 0 0 1 1 1\n"))

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "save", ioErr.Op)
	assert.Equal(t, "/nope/out.png", ioErr.Path)
	assert.Equal(t, 0, in.State().Edges.Len(), "run must stop at the failed save")
}

func TestDisplayFailureIsFatal(t *testing.T) {
	sink := &recordingSink{presentErr: errors.New("no display")}
	err := Run(strings.NewReader("display\n"), nil, sink)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "display", ioErr.Op)
}

func TestReadFailureIsFatal(t *testing.T) {
	err := Run(failingReader{}, nil, nil)
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestInvalidStepRecovered(t *testing.T) {
	in, _ := run(t, "circle\n0 0 0 1\nline\n0 0 0 1 1 1\n", WithStep(0))
	assert.Equal(t, 1, in.State().Edges.Segments())
	require.Len(t, in.Diagnostics(), 1)
	assert.ErrorIs(t, in.Diagnostics()[0], wire3d.ErrInvalidStep)
}

func TestStateSharedAcrossRuns(t *testing.T) {
	st := NewState()
	require.NoError(t, Run(strings.NewReader("line\n0 0 0 1 0 0\nmove\n5 0 0\n"), st, nil))
	require.NoError(t, Run(strings.NewReader("apply\n"), st, nil))

	_, q := st.Edges.Segment(0)
	assertPoint(t, wire3d.Pt3(6, 0, 0), q)

	st.Reset()
	assert.Equal(t, 0, st.Edges.Len())
	assert.True(t, st.Transform.IsIdentity(0))
}

func TestExecuteValidatesArgs(t *testing.T) {
	in := NewInterpreter(nil, nil)
	_, err := in.Execute(Command{Type: CmdLine, Args: []float64{1}})
	assert.ErrorIs(t, err, ErrMalformedArguments)

	quit, err := in.Execute(Command{Type: CmdQuit})
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestLoggerOption(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	run(t, "nope\nline\n0 0 0 1 1 1\n", WithLogger(l))

	out := buf.String()
	assert.Contains(t, out, "skipping unknown command")
	assert.Contains(t, out, "command=line")
}

func TestErrorMessages(t *testing.T) {
	pe := &ParseError{Line: 7, Command: "move", Err: ErrMalformedArguments}
	assert.Equal(t, "script: line 7: move: script: malformed arguments", pe.Error())

	ioErr := &IOError{Op: "save", Path: "a.png", Err: errors.New("boom")}
	assert.Equal(t, "script: save a.png: boom", ioErr.Error())
	assert.Equal(t, "script: read: boom", (&IOError{Op: "read", Err: errors.New("boom")}).Error())
}
