package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"src.nsh.sh/pkg/eval"
	"src.nsh.sh/pkg/prog"
)

// Script is a non-interactive unit of execution: either inline code or the
// content of a file. Immutable after construction.
type Script struct {
	code string
	path string
}

// ScriptFromLines joins the given lines with newline separators into an
// inline script.
func ScriptFromLines(lines []string) Script {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return Script{code: sb.String()}
}

// ScriptFromFile loads a script from a file. The source must be valid
// UTF-8.
func ScriptFromFile(path string) (Script, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Script{}, fmt.Errorf("cannot get full path of script %q: %v", path, err)
	}
	bs, err := os.ReadFile(abs)
	if err != nil {
		return Script{}, fmt.Errorf("cannot read script: %v", err)
	}
	if !utf8.Valid(bs) {
		return Script{}, fmt.Errorf("script %q is not valid UTF-8", abs)
	}
	return Script{code: string(bs), path: abs}, nil
}

// Code returns the script's source text.
func (s Script) Code() string { return s.code }

// Path returns the originating file path; it is empty for inline code.
func (s Script) Path() string { return s.path }

// runScript executes a script non-interactively. Unlike in the interactive
// loop, an evaluation error is a hard failure, since there is no subsequent
// prompt to recover into.
func (p Program) runScript(fds [3]*os.File, ctx *eval.Context, s Script) error {
	out, err := ParseAndEval(p.Parser, p.Evaler, ctx, s.Code())
	fmt.Fprint(fds[1], out)
	ctx.MaybePrintErrors()
	if err != nil {
		fmt.Fprintln(fds[2], err)
		return prog.Exit(2)
	}
	return nil
}
