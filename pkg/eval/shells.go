package eval

// ShellManager keeps the stack of open shell contexts. Each context carries
// its own working directory; the current one determines where evaluated
// commands run. The session ends when the last context is removed.
type ShellManager struct {
	dirs    []string
	current int
}

// NewShellManager returns a ShellManager with a single shell context at dir.
func NewShellManager(dir string) *ShellManager {
	return &ShellManager{dirs: []string{dir}}
}

// Path returns the working directory of the current shell context, or "" if
// no context remains.
func (m *ShellManager) Path() string {
	if m.Empty() {
		return ""
	}
	return m.dirs[m.current]
}

// SetPath changes the working directory of the current shell context.
func (m *ShellManager) SetPath(dir string) {
	if !m.Empty() {
		m.dirs[m.current] = dir
	}
}

// Enter pushes a new shell context at dir and makes it current.
func (m *ShellManager) Enter(dir string) {
	m.dirs = append(m.dirs, dir)
	m.current = len(m.dirs) - 1
}

// RemoveCurrent removes the current shell context. The previous context, if
// any, becomes current.
func (m *ShellManager) RemoveCurrent() {
	if m.Empty() {
		return
	}
	m.dirs = append(m.dirs[:m.current], m.dirs[m.current+1:]...)
	if m.current > 0 {
		m.current--
	}
}

// Empty reports whether no shell context remains.
func (m *ShellManager) Empty() bool { return len(m.dirs) == 0 }

// Count returns the number of open shell contexts.
func (m *ShellManager) Count() int { return len(m.dirs) }
