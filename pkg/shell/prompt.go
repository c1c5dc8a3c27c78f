package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"src.nsh.sh/pkg/config"
	"src.nsh.sh/pkg/eval"
	"src.nsh.sh/pkg/strutil"
)

// minimalPrompt is used when a configured prompt pipeline runs but
// misbehaves: partial prompt output is considered untrustworthy.
const minimalPrompt = "> "

// prompt computes the prompt for the next line: the display form, possibly
// containing color escapes, and a plain form with escapes stripped, used
// wherever visual width matters. A misbehaving prompt setting must never
// block the session, so every failure degrades to a fallback.
func prompt(parser eval.Parser, evaler eval.Evaler, ctx *eval.Context, cfg config.Config) (colored, plain string) {
	text, ok := config.StringVar(cfg, "prompt")
	if !ok {
		return fallbackPrompt(ctx.Shells.Path())
	}

	pop := ctx.Scope.Enter()
	defer pop()

	block, err := parser.Parse(text, 0, ctx.Scope)
	if err != nil {
		return fallbackPrompt(ctx.Shells.Path())
	}
	// A prompt must not redirect away from the display.
	block.RedirectStdout()

	out, err := evaler.Run(block, ctx, eval.EmptyStream())
	if err != nil {
		ctx.Host().PrintErr(err)
		return minimalPrompt, minimalPrompt
	}
	if ctx.MaybePrintErrors() {
		return minimalPrompt, minimalPrompt
	}
	s, err := out.CollectString()
	if err != nil {
		ctx.Host().PrintErr(err)
		return minimalPrompt, minimalPrompt
	}
	colored = strutil.ChopLineEnding(s)
	return colored, strutil.StripANSI(colored)
}

func fallbackPrompt(cwd string) (colored, plain string) {
	branch := ""
	if b := currentBranch(cwd); b != "" {
		branch = "(" + b + ")"
	}
	return fmt.Sprintf("\x1b[32m%s%s\x1b[m> ", cwd, branch), cwd + branch + "> "
}

// currentBranch reports the git branch checked out at dir, walking up to
// the repository root, or "" when dir is not inside a repository or HEAD is
// detached.
func currentBranch(dir string) string {
	for {
		head, err := os.ReadFile(filepath.Join(dir, ".git", "HEAD"))
		if err == nil {
			line := strutil.ChopLineEnding(string(head))
			if name, ok := strings.CutPrefix(line, "ref: refs/heads/"); ok {
				return name
			}
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
