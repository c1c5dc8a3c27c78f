package shell

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"src.nsh.sh/pkg/buildinfo"
	"src.nsh.sh/pkg/config"
	"src.nsh.sh/pkg/edit"
	"src.nsh.sh/pkg/env"
	"src.nsh.sh/pkg/envsync"
	"src.nsh.sh/pkg/eval"
	"src.nsh.sh/pkg/plugin"
	"src.nsh.sh/pkg/store"
	"src.nsh.sh/pkg/strutil"
)

// InteractConfig keeps configuration for the interactive mode. Context and
// Syncer are normally injected by Program.Run and constructed here when
// nil, so that tests can drive Interact directly.
type InteractConfig struct {
	ConfigPath  string
	HistoryPath string
	SaveHistory bool

	Context *eval.Context
	Syncer  *envsync.Syncer

	editor editor
}

// Interact runs an interactive session over fds until end of input, an
// explicit break, or a confirmed quit-on-interrupt; it reports whether the
// session ended with the latter, in which case the caller is expected to
// exit the process with success status.
func (p Program) Interact(fds [3]*os.File, cfg *InteractConfig) bool {
	ctx := cfg.Context
	if ctx == nil {
		ctx = eval.NewContext(eval.NewStdHost(fds[1], fds[2]))
	}
	sync := cfg.Syncer
	if sync == nil {
		sync = createSyncer(cfg.ConfigPath, ctx)
	}
	host := ctx.Host()

	// Plugin discovery runs once, before the first prompt.
	dirs, err := plugin.SearchPaths(sync.Config())
	if err != nil {
		host.PrintErr(err)
	}
	plugin.Register(ctx, plugin.Scan(dirs))

	var st store.Store
	if cfg.SaveHistory && cfg.HistoryPath != "" {
		st, err = store.NewStore(cfg.HistoryPath)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot open history:", err)
			st = nil
		} else {
			defer st.Close()
		}
	}

	ed := cfg.editor
	if ed == nil {
		if isatty.IsTerminal(fds[0].Fd()) {
			ed = edit.NewEditor()
		} else {
			ed = newMinEditor(fds[0], fds[2])
		}
	}
	defer ed.Close()

	if st != nil {
		seedHistory(ed, st)
	}

	if !config.BoolVar(sync.Config(), "skip_welcome_message", false) {
		fmt.Fprintf(fds[1], "Welcome to nsh %s (type 'help' for more info)\n",
			buildinfo.Version)
	}

	if err := p.runStartup(fds, ctx, sync.Config()); err != nil {
		host.PrintErr(err)
	}

	return p.loop(fds, ctx, sync, ed, st)
}

// loop drives the session one iteration at a time: prompt, read, process,
// re-sync, dispatch on the outcome.
func (p Program) loop(fds [3]*os.File, ctx *eval.Context, sync *envsync.Syncer, ed editor, st store.Store) bool {
	var buffer string
	lineStart := 0
	continuation := false
	ctrlcBreak := false
	cooldown := time.Second

loop:
	for {
		// Absorb a cancellation left set by a block that ignored it.
		if ctx.PollAndClearInterrupt() {
			continue
		}

		colored, plain := minimalPrompt, minimalPrompt
		if !continuation {
			colored, plain = prompt(p.Parser, p.Evaler, ctx, sync.Config())
		}

		line, readErr := ed.ReadLine(colored, plain)
		switch readErr {
		case nil, io.EOF, eval.ErrInterrupted:
			cooldown = time.Second
		default:
			fmt.Fprintln(fds[2], "Editor error:", readErr)
			if _, isMin := ed.(*minEditor); !isMin {
				fmt.Fprintln(fds[2], "Falling back to basic line editor")
				ed = newMinEditor(fds[0], fds[2])
			} else {
				fmt.Fprintln(fds[2], "Restarting editor in", cooldown)
				time.Sleep(cooldown)
				if cooldown < time.Minute {
					cooldown *= 2
				}
			}
			continue
		}

		var res lineResult
		switch {
		case readErr == eval.ErrInterrupted:
			res = lineResult{kind: lineCtrlC}
		case readErr == io.EOF && line == "":
			res = lineResult{kind: lineCtrlD}
		default:
			// Text arriving together with end of input is processed as a
			// final attempt; the end of input itself is seen again on the
			// next read.
			if !continuation {
				lineStart = len(buffer)
			}
			buffer += line + "\n"
			start := time.Now()
			res = processLine(p.Parser, p.Evaler, ctx, buffer, lineStart, readErr == io.EOF)
			ctx.Scope.SetEnv(env.CmdDuration, time.Since(start).String())
		}

		// Manual edits to the configuration file take effect on the very
		// next prompt.
		if sync.DidConfigChange() {
			sync.Reload()
			sync.SyncEnvVars(ctx.Scope)
			sync.SyncPathVars(ctx.Scope)
		}
		if err := sync.Autoenv(ctx); err != nil {
			ctx.Host().PrintErr(err)
		}

		continuation = false
		switch res.kind {
		case lineMore:
			continuation = true
		case lineSuccess:
			fmt.Fprint(fds[1], res.out)
			addHistory(ed, st, res.text)
			ctx.MaybePrintErrors()
		case lineError:
			addHistory(ed, st, res.text)
			ctx.Host().PrintErr(res.err)
			ctx.MaybePrintErrors()
		case lineClearHistory:
			ed.ClearHistory()
			if st != nil {
				bestEffort(st.ClearCmds)
			}
		case lineCtrlC:
			if !config.BoolVar(sync.Config(), "ctrlc_exit", false) {
				ctrlcBreak = false
				continue
			}
			if ctrlcBreak {
				return true
			}
			fmt.Fprintln(fds[1], "CTRL-C pressed (again to quit)")
			ctrlcBreak = true
			continue
		case lineCtrlD:
			ctx.Shells.RemoveCurrent()
			if ctx.Shells.Empty() {
				break loop
			}
		case lineBreak:
			break loop
		}
		ctrlcBreak = false
	}
	return false
}

func seedHistory(ed editor, st store.Store) {
	bestEffort(func() error {
		n, err := st.NextCmdSeq()
		if err != nil {
			return err
		}
		cmds, err := st.Cmds(0, n)
		if err != nil {
			return err
		}
		ed.SeedHistory(cmds)
		return nil
	})
}

func addHistory(ed editor, st store.Store, text string) {
	text = strutil.ChopLineEnding(text)
	if text == "" {
		return
	}
	ed.AppendHistory(text)
	if st != nil {
		bestEffort(func() error {
			_, err := st.AddCmd(text)
			return err
		})
	}
}
