package shell

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"src.nsh.sh/pkg/config"
	"src.nsh.sh/pkg/env"
	"src.nsh.sh/pkg/eval"
)

var errStartupNotTable = errors.New("expected a table of pipeline strings as startup commands")

// runStartup executes the configured "startup" batch once, before
// interactive input begins. The entries are joined with newline separators
// into one synthetic script whose failures are swallowed; a wrong-shape
// setting is the only condition reported as an error.
func (p Program) runStartup(fds [3]*os.File, ctx *eval.Context, cfg config.Config) error {
	lines, err := config.StringsVar(cfg, "startup")
	if err != nil {
		return errStartupNotTable
	}
	if len(lines) == 0 {
		return nil
	}
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	start := time.Now()
	bestEffort(func() error {
		out, err := ParseAndEval(p.Parser, p.Evaler, ctx, sb.String())
		fmt.Fprint(fds[1], out)
		return err
	})
	ctx.Scope.SetEnv(env.CmdDuration, time.Since(start).String())
	ctx.MaybePrintErrors()
	return nil
}

// bestEffort runs f and explicitly discards its error after logging it. It
// marks the operations whose failure must not disturb the session.
func bestEffort(f func() error) {
	if err := f(); err != nil {
		logger.Println("ignored error:", err)
	}
}
