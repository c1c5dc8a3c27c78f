package shell

import (
	"errors"
	"strings"

	"src.nsh.sh/pkg/eval"
)

// lineKind classifies the outcome of processing one logical line. Exactly
// one outcome is produced per processed line; no outcome implies a retry —
// the loop decides the next action.
type lineKind int

const (
	lineSuccess lineKind = iota
	lineError
	lineClearHistory
	lineCtrlC
	lineCtrlD
	lineBreak
	// lineMore means the text does not yet parse as a complete construct
	// and more input may resolve it. The loop reads another physical line
	// into the same logical line by leaving the line offset unchanged.
	lineMore
)

type lineResult struct {
	kind lineKind
	text string // source text of the line, for history
	out  string // collected output, for lineSuccess
	err  error  // for lineError
}

// processLine classifies the logical line starting at offset start within
// the session buffer. final indicates that no more input will arrive, so an
// incomplete parse is a hard error rather than a request for more input.
//
// A few commands are recognized textually before parsing and short-circuit
// to their dedicated outcome.
func processLine(parser eval.Parser, evaler eval.Evaler, ctx *eval.Context, buffer string, start int, final bool) lineResult {
	line := buffer[start:]
	switch strings.TrimSpace(line) {
	case "":
		return lineResult{kind: lineSuccess}
	case "history -c":
		return lineResult{kind: lineClearHistory, text: line}
	case "exit":
		return lineResult{kind: lineCtrlD, text: line}
	case "exit --now":
		return lineResult{kind: lineBreak, text: line}
	}

	pop := ctx.Scope.Enter()
	defer pop()

	block, err := parser.Parse(line, start, ctx.Scope)
	if err != nil {
		if !final && eval.Incomplete(err) {
			return lineResult{kind: lineMore}
		}
		return lineResult{kind: lineError, text: line, err: err}
	}
	out, err := evaler.Run(block, ctx, eval.EmptyStream())
	if err != nil {
		if errors.Is(err, eval.ErrInterrupted) {
			return lineResult{kind: lineCtrlC, text: line}
		}
		return lineResult{kind: lineError, text: line, err: err}
	}
	text, err := out.CollectString()
	if err != nil {
		return lineResult{kind: lineError, text: line, err: err}
	}
	return lineResult{kind: lineSuccess, text: line, out: text}
}

// ParseAndEval parses and runs text as one standalone unit inside a nested
// scope, returning the collected output. It is the non-interactive
// counterpart of the line processor, used for startup batches, prompt
// pipelines and script files.
func ParseAndEval(parser eval.Parser, evaler eval.Evaler, ctx *eval.Context, text string) (string, error) {
	pop := ctx.Scope.Enter()
	defer pop()

	block, err := parser.Parse(text, 0, ctx.Scope)
	if err != nil {
		return "", err
	}
	out, err := evaler.Run(block, ctx, eval.EmptyStream())
	if err != nil {
		return "", err
	}
	return out.CollectString()
}
