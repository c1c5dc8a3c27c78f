// Package edit implements the line editor used in interactive sessions.
//
// It is a thin wrapper around github.com/peterh/liner, adding history
// seeding and mapping the editor's abort signal to the evaluator's
// interruption error so that the session loop sees a single vocabulary.
package edit

import (
	"github.com/peterh/liner"

	"src.nsh.sh/pkg/eval"
	"src.nsh.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[edit] ")

// Editor is a line editor with in-memory history.
type Editor struct {
	state *liner.State
}

// NewEditor creates an Editor reading from the process's standard input.
// The terminal is put into raw mode; Close restores it.
func NewEditor() *Editor {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	return &Editor{state: st}
}

// ReadLine reads one line of input. The editor draws the plain prompt
// itself; the colored variant is ignored since the editor needs to know
// the prompt's printed width when redrawing.
//
// Pressing Ctrl-C aborts the read and returns eval.ErrInterrupted with an
// empty line. End of input is reported as io.EOF.
func (ed *Editor) ReadLine(colored, plain string) (string, error) {
	line, err := ed.state.Prompt(plain)
	if err == liner.ErrPromptAborted {
		return "", eval.ErrInterrupted
	}
	return line, err
}

// AppendHistory adds a line to the in-memory history.
func (ed *Editor) AppendHistory(line string) { ed.state.AppendHistory(line) }

// SeedHistory loads previously persisted commands, oldest first.
func (ed *Editor) SeedHistory(lines []string) {
	for _, line := range lines {
		ed.state.AppendHistory(line)
	}
}

// ClearHistory drops the in-memory history.
func (ed *Editor) ClearHistory() { ed.state.ClearHistory() }

// Close restores the terminal mode. It must be called before the process
// exits or spawns a subprocess that expects a cooked terminal.
func (ed *Editor) Close() error {
	if err := ed.state.Close(); err != nil {
		logger.Printf("closing editor: %v", err)
		return err
	}
	return nil
}
