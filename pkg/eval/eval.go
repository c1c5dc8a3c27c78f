// Package eval defines the evaluation context that the session engine
// drives, along with the capability interfaces of the language it is wired
// to: a parser that turns source text into blocks, and an evaler that runs
// them. The concrete language backend is chosen by the caller; cmd/nsh wires
// the oscmd backend.
package eval

import (
	"errors"
	"io"
)

// Parser turns source text into a runnable Block. offset is the byte offset
// of text within the enclosing session buffer, used in error positions. The
// returned Block may be non-nil even when err is non-nil; callers must check
// err before running the block.
type Parser interface {
	Parse(text string, offset int, sc *Scope) (Block, error)
}

// Block is a parsed, not yet executed pipeline of commands.
type Block interface {
	// RedirectStdout forces the block's final output to the standard output
	// stream, overriding any redirection in the source. It is used for
	// prompt pipelines, which must not redirect away from the display.
	RedirectStdout()
}

// Evaler runs parsed blocks.
type Evaler interface {
	Run(b Block, ctx *Context, input Stream) (Stream, error)
}

// Stream is a stream of output produced, or input consumed, by a block.
type Stream interface {
	CollectString() (string, error)
}

// Incomplete reports whether a parse error indicates that the source ended
// before a construct was complete, so that more input may resolve it.
func Incomplete(err error) bool {
	var ie interface{ Incomplete() bool }
	return errors.As(err, &ie) && ie.Incomplete()
}

// ErrInterrupted is returned by evalers that observe the context's
// cancellation flag at one of their yield points.
var ErrInterrupted = errors.New("interrupted")

// EmptyStream returns a Stream with no content.
func EmptyStream() Stream { return stringStream{} }

// NewStringStream returns a Stream whose content is s.
func NewStringStream(s string) Stream { return stringStream{s} }

type stringStream struct{ s string }

func (s stringStream) CollectString() (string, error) { return s.s, nil }

// StreamFromReader returns a Stream that collects the full content of r.
func StreamFromReader(r io.Reader) Stream { return readerStream{r} }

type readerStream struct{ r io.Reader }

func (s readerStream) CollectString() (string, error) {
	bs, err := io.ReadAll(s.r)
	return string(bs), err
}
