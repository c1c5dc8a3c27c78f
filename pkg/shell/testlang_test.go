package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"src.nsh.sh/pkg/eval"
)

// fakeLang is a scripted language backend for driving the session loop in
// tests. It understands a tiny directive language, one directive per line:
//
//	out TEXT      write TEXT to the output stream
//	softerr TEXT  accumulate a non-fatal error on the context
//	harderr TEXT  fail evaluation with TEXT
//	interrupt     fail evaluation as interrupted
//
// A line ending in a backslash does not parse until a line without one
// arrives; a line starting with "badparse" never parses.
type fakeLang struct {
	parsed []string     // every successfully parsed text, in order
	blocks []*fakeBlock // the corresponding blocks
}

type fakeBlock struct {
	text       string
	toStdout   bool
	scopeDepth int
}

func (b *fakeBlock) RedirectStdout() { b.toStdout = true }

type fakeParseError struct {
	msg        string
	incomplete bool
}

func (e *fakeParseError) Error() string    { return e.msg }
func (e *fakeParseError) Incomplete() bool { return e.incomplete }

func (l *fakeLang) Parse(text string, offset int, sc *eval.Scope) (eval.Block, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "\\") {
		return nil, &fakeParseError{msg: "unexpected end of input", incomplete: true}
	}
	if strings.HasPrefix(trimmed, "badparse") {
		return nil, &fakeParseError{msg: "cannot parse: " + trimmed}
	}
	l.parsed = append(l.parsed, text)
	b := &fakeBlock{text: text, scopeDepth: sc.Depth()}
	l.blocks = append(l.blocks, b)
	return b, nil
}

func (l *fakeLang) Run(b eval.Block, ctx *eval.Context, input eval.Stream) (eval.Stream, error) {
	blk := b.(*fakeBlock)
	var out strings.Builder
	for _, line := range strings.Split(blk.text, "\n") {
		line = strings.TrimSpace(line)
		directive, arg, _ := strings.Cut(line, " ")
		switch directive {
		case "", "badparse":
			// Ignore blanks and continuation fragments.
		case "out":
			out.WriteString(arg + "\n")
		case "softerr":
			ctx.AddError(errors.New(arg))
		case "harderr":
			return nil, errors.New(arg)
		case "interrupt":
			return nil, eval.ErrInterrupted
		default:
			if !strings.HasSuffix(line, "\\") {
				return nil, fmt.Errorf("fakeLang: unknown directive %q", line)
			}
		}
	}
	return eval.NewStringStream(out.String()), nil
}

// fakeEditor replays a scripted sequence of reads and records everything
// the loop does to it. Once the script is exhausted every read reports end
// of input, like a real editor on a closed stdin.
type fakeEditor struct {
	reads []fakeRead

	prompts []string // plain prompt of every read
	history []string
	seeded  []string
	cleared int
	closed  bool
}

type fakeRead struct {
	line string
	err  error
	then func() // runs as the read happens, e.g. to edit the config file
}

func feed(lines ...string) []fakeRead {
	var reads []fakeRead
	for _, line := range lines {
		reads = append(reads, fakeRead{line: line})
	}
	return reads
}

func interruptRead() fakeRead { return fakeRead{err: eval.ErrInterrupted} }

func (ed *fakeEditor) ReadLine(colored, plain string) (string, error) {
	ed.prompts = append(ed.prompts, plain)
	if len(ed.reads) == 0 {
		return "", io.EOF
	}
	r := ed.reads[0]
	ed.reads = ed.reads[1:]
	if r.then != nil {
		r.then()
	}
	return r.line, r.err
}

// testHost is a Host that records what the engine printed.
type testHost struct {
	outs []string
	errs []error
}

func (h *testHost) Stdout(s string)  { h.outs = append(h.outs, s) }
func (h *testHost) PrintErr(e error) { h.errs = append(h.errs, e) }

func (ed *fakeEditor) AppendHistory(line string) { ed.history = append(ed.history, line) }
func (ed *fakeEditor) SeedHistory(lines []string) {
	ed.seeded = append(ed.seeded, lines...)
}
func (ed *fakeEditor) ClearHistory() { ed.cleared++ }
func (ed *fakeEditor) Close() error  { ed.closed = true; return nil }
