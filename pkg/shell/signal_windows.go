//go:build windows

package shell

import (
	"os"
	"syscall"

	"src.nsh.sh/pkg/eval"
)

var notifiedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func signalName(sig os.Signal) string { return sig.String() }

func handleSignal(ctx *eval.Context, sig os.Signal) {
	switch sig {
	case os.Interrupt:
		ctx.Interrupt()
	case syscall.SIGTERM:
		os.Exit(0)
	}
}
