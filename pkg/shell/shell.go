// Package shell is the entry point for the interactive interface of nsh: it
// drives the session loop over a language backend provided by the caller.
package shell

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"

	"src.nsh.sh/pkg/config"
	"src.nsh.sh/pkg/envsync"
	"src.nsh.sh/pkg/eval"
	"src.nsh.sh/pkg/logutil"
	"src.nsh.sh/pkg/prog"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. Parser and Evaler are the language
// backend the session drives; cmd/nsh wires the oscmd backend.
type Program struct {
	Parser eval.Parser
	Evaler eval.Evaler
}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.CodeInArg && f.Stdin {
		return prog.BadUsage("-c and -stdin are mutually exclusive")
	}

	ctx := eval.NewContext(eval.NewStdHost(fds[1], fds[2]))
	stopSignals := initSignal(ctx)
	defer stopSignals()

	opts := &Options{
		ConfigPath:  f.Config,
		SaveHistory: !f.NoHistory,
		ReadStdin:   f.Stdin,
	}
	switch {
	case f.CodeInArg:
		if len(args) == 0 {
			return prog.BadUsage("need code to execute with -c")
		}
		opts.Scripts = append(opts.Scripts, ScriptFromLines(args))
	case f.Stdin:
		var lines []string
		in := bufio.NewScanner(fds[0])
		for in.Scan() {
			lines = append(lines, in.Text())
		}
		opts.Scripts = append(opts.Scripts, ScriptFromLines(lines))
	case len(args) == 1:
		s, err := ScriptFromFile(args[0])
		if err != nil {
			fmt.Fprintln(fds[2], err)
			return prog.Exit(2)
		}
		opts.Scripts = append(opts.Scripts, s)
	case len(args) > 1:
		return prog.BadUsage("can run at most one script file")
	}

	sync := createSyncer(opts.ConfigPath, ctx)
	opts.fillHistoryPath(sync.Config())

	if len(opts.Scripts) > 0 {
		for _, s := range opts.Scripts {
			if err := p.runScript(fds, ctx, s); err != nil {
				return err
			}
		}
		return nil
	}

	p.Interact(fds, &InteractConfig{
		Context:     ctx,
		Syncer:      sync,
		HistoryPath: opts.HistoryPath,
		SaveHistory: opts.SaveHistory,
	})
	return nil
}

// createSyncer builds the environment syncer over the configuration at
// configPath (or the default location) and primes the scope: the process
// environment, the search paths, and the config-path/history-path variables
// visible to pipelines.
func createSyncer(configPath string, ctx *eval.Context) *envsync.Syncer {
	var cfg config.Config
	if configPath != "" {
		cfg = config.WithPath(configPath)
	} else {
		configPath = config.DefaultPath()
		cfg = config.New()
	}
	sync := envsync.New(cfg)
	sync.LoadEnvironment()
	sync.SyncEnvVars(ctx.Scope)
	sync.SyncPathVars(ctx.Scope)
	ctx.Scope.SetVar("config-path", configPath)
	ctx.Scope.SetVar("history-path", historyPath(cfg))
	return sync
}

// initSignal starts the signal handler goroutine, the only actor that
// mutates session state outside the loop thread: it may set the context's
// cancellation flag at any time, including mid-evaluation.
func initSignal(ctx *eval.Context) func() {
	sigCh := make(chan os.Signal, 32)
	signal.Notify(sigCh, notifiedSignals...)
	go func() {
		for sig := range sigCh {
			logger.Println("signal", signalName(sig))
			handleSignal(ctx, sig)
		}
	}()
	return func() { signal.Stop(sigCh) }
}
