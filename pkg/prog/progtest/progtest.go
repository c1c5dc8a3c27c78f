// Package progtest provides a fixture for testing subprograms end to end:
// it sets up the three standard files as pipes, captures the outputs, and
// knows how to assert on them.
package progtest

import (
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"src.nsh.sh/pkg/must"
	"src.nsh.sh/pkg/testutil"
)

// Fixture is a test fixture for running a subprogram. The working directory
// is a fresh temporary directory for the duration of the test.
type Fixture struct {
	pipes [3]*pipe
}

type pipe struct {
	r, w *os.File

	mu       sync.Mutex
	closed   bool
	captured string
	done     chan struct{}
}

func newPipe(capture bool) *pipe {
	r, w := must.Pipe()
	p := &pipe{r: r, w: w, done: make(chan struct{})}
	if capture {
		go func() {
			b, _ := io.ReadAll(r)
			p.captured = string(b)
			close(p.done)
		}()
	} else {
		close(p.done)
	}
	return p
}

func (p *pipe) output() string {
	p.closeWrite()
	<-p.done
	return p.captured
}

func (p *pipe) closeWrite() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.w.Close()
		p.closed = true
	}
}

func (p *pipe) close() {
	p.closeWrite()
	p.r.Close()
}

// Setup returns a Fixture, changing into a temporary working directory.
func Setup(t *testing.T) *Fixture {
	testutil.InTempDir(t)
	f := &Fixture{[3]*pipe{newPipe(false), newPipe(true), newPipe(true)}}
	t.Cleanup(func() {
		for _, p := range f.pipes {
			p.close()
		}
	})
	return f
}

// Fds returns the fixture's standard files, suitable for prog.Run.
func (f *Fixture) Fds() [3]*os.File {
	return [3]*os.File{f.pipes[0].r, f.pipes[1].w, f.pipes[2].w}
}

// FeedIn feeds the given text to the subprogram's standard input and closes
// it, signaling end of input after the text is consumed.
func (f *Fixture) FeedIn(s string) {
	must.OK1(f.pipes[0].w.WriteString(s))
	f.pipes[0].closeWrite()
}

// Out returns the output collected on stdout (fd 1) or stderr (fd 2). It may
// only be called after the subprogram has finished writing, since it closes
// the write end.
func (f *Fixture) Out(fd int) string {
	return f.pipes[fd].output()
}

// TestOut verifies that the output on the given fd is exactly wantOut.
func (f *Fixture) TestOut(t *testing.T, fd int, wantOut string) {
	t.Helper()
	if out := f.Out(fd); out != wantOut {
		t.Errorf("got out %q, want %q", out, wantOut)
	}
}

// TestOutSnippet verifies that the output on the given fd contains
// wantOutSnippet.
func (f *Fixture) TestOutSnippet(t *testing.T, fd int, wantOutSnippet string) {
	t.Helper()
	if out := f.Out(fd); !strings.Contains(out, wantOutSnippet) {
		t.Errorf("got out %q, want string containing %q", out, wantOutSnippet)
	}
}
