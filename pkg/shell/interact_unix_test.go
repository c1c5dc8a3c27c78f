//go:build !windows

package shell

import (
	"os"
	"strings"
	"testing"

	"github.com/creack/pty"

	"src.nsh.sh/pkg/config"
	"src.nsh.sh/pkg/envsync"
	"src.nsh.sh/pkg/eval"
	"src.nsh.sh/pkg/prog/progtest"
)

// Runs a session with the input side on a real pseudo-terminal, exercising
// the terminal line discipline: the line arrives on enter, and EOT at the
// start of a line reads as end of input.
func TestInteract_PTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open pty: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	f := progtest.Setup(t)
	cfg := config.NewFakeConfig(map[string]any{"skip_welcome_message": true})
	ctx := eval.NewContext(&testHost{})
	ic := &InteractConfig{
		Context: ctx,
		Syncer:  envsync.New(cfg),
		editor:  newMinEditor(tty, tty),
	}

	var echoed strings.Builder
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 1024)
		for {
			n, err := ptmx.Read(buf)
			echoed.Write(buf[:n])
			if err != nil {
				return
			}
		}
	}()
	go func() {
		ptmx.WriteString("out hi\n")
		ptmx.Write([]byte{0x04})
	}()

	fds := [3]*os.File{tty, f.Fds()[1], f.Fds()[2]}
	lang := &fakeLang{}
	if quit := (Program{Parser: lang, Evaler: lang}).Interact(fds, ic); quit {
		t.Error("session reported a confirmed quit")
	}
	f.TestOut(t, 1, "hi\n")

	tty.Close()
	<-done
	if !strings.Contains(echoed.String(), "> ") {
		t.Errorf("prompt not shown on the terminal: %q", echoed.String())
	}
}
