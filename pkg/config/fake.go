package config

import "time"

// FakeConfig is an in-memory Config for tests. It shares the modification
// detection semantics of the file-backed implementation; the simulated
// source can be advanced with Touch and made unreadable with Vanish.
type FakeConfig struct {
	vars     map[string]any
	env      map[string]string
	path     []string
	loadedAt modTime
	source   *fakeSource
}

// fakeSource simulates the persisted file; all snapshots obtained through
// Reload share it.
type fakeSource struct {
	at modTime
}

// NewFakeConfig returns a FakeConfig with the given settings and a source
// that is considered freshly written.
func NewFakeConfig(vars map[string]any) *FakeConfig {
	if vars == nil {
		vars = make(map[string]any)
	}
	src := &fakeSource{at: modTime{known: true, d: time.Now().Sub(epoch)}}
	return &FakeConfig{vars: vars, loadedAt: src.at, source: src}
}

// Set changes a setting. The change is visible to this snapshot and to every
// snapshot later obtained through Reload; call Touch as well to make the
// change detectable as drift.
func (c *FakeConfig) Set(name string, value any) { c.vars[name] = value }

// SetEnv sets the captured environment table.
func (c *FakeConfig) SetEnv(env map[string]string) { c.env = env }

// SetPath sets the captured search-path list.
func (c *FakeConfig) SetPath(path []string) { c.path = path }

// Touch advances the simulated source's modification time.
func (c *FakeConfig) Touch() {
	c.source.at = modTime{known: true, d: c.source.at.d + time.Second}
}

// Vanish makes the simulated source's modification time unreadable, like a
// deleted configuration file.
func (c *FakeConfig) Vanish() { c.source.at = modTime{} }

func (c *FakeConfig) Var(name string) (any, bool) {
	v, ok := c.vars[name]
	return v, ok
}

func (c *FakeConfig) Env() (map[string]string, bool) {
	return c.env, c.env != nil
}

func (c *FakeConfig) Path() ([]string, bool) {
	return c.path, c.path != nil
}

func (c *FakeConfig) IsModified() bool {
	return changed(c.loadedAt, c.source.at)
}

func (c *FakeConfig) Reload() Config {
	reloaded := *c
	reloaded.loadedAt = c.source.at
	return &reloaded
}
