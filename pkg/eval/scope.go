package eval

// Scope is a stack of frames of variable bindings. Each frame holds shell
// variables and environment variables separately; lookups search the
// innermost frame first.
type Scope struct {
	frames []*frame
}

type frame struct {
	vars map[string]any
	envs map[string]string
}

func newFrame() *frame {
	return &frame{vars: make(map[string]any), envs: make(map[string]string)}
}

// NewScope returns a Scope with a single bottom frame.
func NewScope() *Scope {
	return &Scope{frames: []*frame{newFrame()}}
}

// Enter pushes a new frame and returns a function that pops it. Callers must
// arrange for the returned function to run on every return path, normally by
// deferring it, so that no frame leaks on error paths.
func (sc *Scope) Enter() func() {
	sc.frames = append(sc.frames, newFrame())
	return func() { sc.frames = sc.frames[:len(sc.frames)-1] }
}

// Depth returns the number of frames on the stack.
func (sc *Scope) Depth() int { return len(sc.frames) }

func (sc *Scope) current() *frame { return sc.frames[len(sc.frames)-1] }

// SetVar binds a shell variable in the current frame.
func (sc *Scope) SetVar(name string, value any) {
	sc.current().vars[name] = value
}

// Var looks up a shell variable, innermost frame first.
func (sc *Scope) Var(name string) (any, bool) {
	for i := len(sc.frames) - 1; i >= 0; i-- {
		if v, ok := sc.frames[i].vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetEnv binds an environment variable in the current frame.
func (sc *Scope) SetEnv(name, value string) {
	sc.current().envs[name] = value
}

// SetGlobalEnv binds an environment variable in the bottom frame, so that
// the binding survives frames entered for a single line.
func (sc *Scope) SetGlobalEnv(name, value string) {
	sc.frames[0].envs[name] = value
}

// Env looks up an environment variable, innermost frame first.
func (sc *Scope) Env(name string) (string, bool) {
	for i := len(sc.frames) - 1; i >= 0; i-- {
		if v, ok := sc.frames[i].envs[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Envs returns the merged environment visible from the current frame, with
// inner frames overriding outer ones.
func (sc *Scope) Envs() map[string]string {
	merged := make(map[string]string)
	for _, f := range sc.frames {
		for k, v := range f.envs {
			merged[k] = v
		}
	}
	return merged
}
