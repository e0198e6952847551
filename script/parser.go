package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/gogpu/wire3d"
)

// Parser reads commands from a script.
type Parser struct {
	r    *bufio.Reader
	line int
}

// NewParser creates a parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: bufio.NewReader(r)}
}

// Line returns the number of lines consumed so far.
func (p *Parser) Line() int {
	return p.line
}

// Next returns the next command.
//
// At end of input it returns io.EOF. A failing reader yields an [*IOError].
// A problem confined to one command yields that command together with a
// [*ParseError]; the parser stays positioned after the command, so the
// caller may continue. For an invalid rotate axis the returned command is
// complete, with Axis set to Z, and the error wraps [wire3d.ErrInvalidAxis].
func (p *Parser) Next() (Command, error) {
	for {
		raw, err := p.readLine()
		if err != nil {
			return Command{}, err
		}
		keyword := strings.TrimSpace(raw)
		if keyword == "" {
			continue
		}

		cmd := Command{Type: LookupKeyword(keyword), Line: p.line, Keyword: keyword}
		if !cmd.Type.NeedsArgs() {
			return cmd, nil
		}

		args, err := p.readLine()
		if errors.Is(err, io.EOF) {
			return cmd, &ParseError{Line: cmd.Line, Command: keyword, Err: fmt.Errorf("missing argument line: %w", io.ErrUnexpectedEOF)}
		}
		if err != nil {
			return cmd, err
		}
		if err := parseArgs(&cmd, args); err != nil {
			return cmd, &ParseError{Line: cmd.Line, Command: keyword, Err: err}
		}
		return cmd, nil
	}
}

// readLine returns the next line without its terminator. A final line with
// no newline is returned normally; io.EOF is returned only when nothing
// remains.
func (p *Parser) readLine() (string, error) {
	s, err := p.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", &IOError{Op: "read", Err: err}
		}
		if s == "" {
			return "", io.EOF
		}
	}
	p.line++
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// parseArgs fills cmd from its argument line.
func parseArgs(cmd *Command, line string) error {
	if cmd.Type == CmdSave {
		if strings.TrimSpace(line) == "" {
			return fmt.Errorf("%w: empty filename", ErrMalformedArguments)
		}
		cmd.Filename = line
		return nil
	}

	tokens, err := tokenize(line)
	if err != nil {
		return err
	}

	var axisErr error
	if cmd.Type == CmdRotate {
		if len(tokens) == 0 {
			return fmt.Errorf("%w: want axis and angle, got nothing", ErrMalformedArguments)
		}
		// "x45" is the axis letter glued to the angle.
		if len(tokens) == 1 && len(tokens[0]) > 1 && isLetter(tokens[0][0]) {
			tokens = []string{tokens[0][:1], tokens[0][1:]}
		}
		cmd.Axis, axisErr = wire3d.ParseAxis(tokens[0])
		tokens = tokens[1:]
	}

	want := cmd.Type.Arity()
	if len(tokens) != want {
		return fmt.Errorf("%w: want %d numbers, got %d", ErrMalformedArguments, want, len(tokens))
	}
	cmd.Args = make([]float64, want)
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: argument %d: %q is not a finite number", ErrMalformedArguments, i+1, tok)
		}
		cmd.Args[i] = v
	}

	// Reported last so a complete rotate can still run with the Z fallback.
	return axisErr
}

// tokenize splits an argument line on whitespace. Quoting, escapes and
// shell operators such as ; or | have no meaning in the language, so a line
// containing them is malformed rather than silently cut short.
func tokenize(line string) ([]string, error) {
	if i := strings.IndexAny(line, "\"'`\\"); i >= 0 {
		return nil, fmt.Errorf("%w: unexpected %q", ErrMalformedArguments, line[i])
	}
	sp := shellwords.NewParser()
	tokens, err := sp.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedArguments, err)
	}
	if sp.Position != -1 {
		return nil, fmt.Errorf("%w: shell operator at column %d", ErrMalformedArguments, sp.Position+1)
	}
	return tokens, nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
