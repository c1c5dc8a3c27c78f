//go:build !windows

package shell

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"src.nsh.sh/pkg/eval"
)

var notifiedSignals = []os.Signal{syscall.SIGINT, syscall.SIGHUP}

func signalName(sig os.Signal) string {
	return unix.SignalName(sig.(syscall.Signal))
}

func handleSignal(ctx *eval.Context, sig os.Signal) {
	switch sig {
	case syscall.SIGINT:
		ctx.Interrupt()
	case syscall.SIGHUP:
		syscall.Kill(0, syscall.SIGHUP)
		os.Exit(0)
	}
}
