package eval

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Host abstracts the output side of the session: normal text and error
// reports. Everything the engine shows to the user goes through a Host, so
// tests can capture it.
type Host interface {
	Stdout(s string)
	PrintErr(err error)
}

// NewStdHost returns a Host that writes to the given writers.
func NewStdHost(out, err io.Writer) Host { return &stdHost{out, err} }

type stdHost struct{ out, err io.Writer }

func (h *stdHost) Stdout(s string)  { fmt.Fprintln(h.out, s) }
func (h *stdHost) PrintErr(e error) { fmt.Fprintln(h.err, e) }

// Command is anything that can be registered in the context's command
// registry; plugin discovery registers discovered plugin commands here.
type Command interface {
	Name() string
}

// Context is the evaluation context a session borrows for its lifetime. It
// owns the scope stack, the stack of open shell contexts, the process-wide
// cancellation flag, accumulated non-fatal errors and the command registry.
//
// The scope stack and shell manager are owned by the single session thread;
// only the cancellation flag and the error list may be touched from other
// goroutines.
type Context struct {
	Scope  *Scope
	Shells *ShellManager

	host      Host
	interrupt atomic.Bool

	mu   sync.Mutex
	errs []error
	cmds map[string]Command
}

// NewContext returns a Context with a fresh scope, a single shell context at
// the process working directory, and the given host.
func NewContext(host Host) *Context {
	wd, err := os.Getwd()
	if err != nil {
		wd = string(os.PathSeparator)
	}
	return &Context{
		Scope:  NewScope(),
		Shells: NewShellManager(wd),
		host:   host,
		cmds:   make(map[string]Command),
	}
}

// Host returns the context's host.
func (c *Context) Host() Host { return c.host }

// Interrupt sets the process-wide cancellation flag. It is safe to call from
// a signal handler goroutine, including while a block is being evaluated.
func (c *Context) Interrupt() { c.interrupt.Store(true) }

// InterruptPending reports the cancellation flag without clearing it.
// Evalers should poll it at their yield points and abort with
// ErrInterrupted.
func (c *Context) InterruptPending() bool { return c.interrupt.Load() }

// PollAndClearInterrupt reports whether the cancellation flag was set,
// clearing it. Every consumer that acts on the flag goes through this method
// so that the clear-on-read contract is observed consistently.
func (c *Context) PollAndClearInterrupt() bool { return c.interrupt.Swap(false) }

// AddError accumulates a non-fatal error to be shown by the next
// MaybePrintErrors call.
func (c *Context) AddError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

// TakeErrors returns the accumulated non-fatal errors, clearing them.
func (c *Context) TakeErrors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := c.errs
	c.errs = nil
	return errs
}

// MaybePrintErrors prints the accumulated non-fatal errors to the host and
// clears them, so that the same error is never shown twice. It reports
// whether there was any.
func (c *Context) MaybePrintErrors() bool {
	errs := c.TakeErrors()
	for _, err := range errs {
		c.host.PrintErr(err)
	}
	return len(errs) > 0
}

// HasCommand reports whether a command with the given name is registered.
func (c *Context) HasCommand(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.cmds[name]
	return ok
}

// AddCommand registers a command. When the name is already registered the
// call is a no-op; the first registration wins.
func (c *Context) AddCommand(cmd Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.cmds[cmd.Name()]; !ok {
		c.cmds[cmd.Name()] = cmd
	}
}

// Command returns the registered command with the given name.
func (c *Context) Command(name string) (Command, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd, ok := c.cmds[name]
	return cmd, ok
}
