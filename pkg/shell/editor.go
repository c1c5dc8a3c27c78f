package shell

import (
	"bufio"
	"fmt"
	"io"

	"src.nsh.sh/pkg/strutil"
)

// This type is the interface that the line editor has to satisfy. It is
// needed so that this package does not depend on the edit package.
type editor interface {
	// ReadLine reads one physical line, shown behind either the colored
	// prompt or its width-insensitive plain form, whichever the editor can
	// render correctly. It reports an aborted read as eval.ErrInterrupted
	// and end of input as io.EOF; text read before end of input is returned
	// alongside io.EOF.
	ReadLine(colored, plain string) (string, error)
	AppendHistory(line string)
	SeedHistory(lines []string)
	ClearHistory()
	Close() error
}

// minEditor is the fallback editor used when the input is not a terminal or
// the real editor keeps failing. It has no history.
type minEditor struct {
	in  *bufio.Reader
	out io.Writer
}

func newMinEditor(in io.Reader, out io.Writer) *minEditor {
	return &minEditor{bufio.NewReader(in), out}
}

func (ed *minEditor) ReadLine(colored, plain string) (string, error) {
	fmt.Fprint(ed.out, plain)
	line, err := ed.in.ReadString('\n')
	return strutil.ChopLineEnding(line), err
}

func (ed *minEditor) AppendHistory(string) {}
func (ed *minEditor) SeedHistory([]string) {}
func (ed *minEditor) ClearHistory()        {}
func (ed *minEditor) Close() error         { return nil }
