// Package envsync keeps the OS process environment, the persisted
// configuration and the shell scope mutually consistent across session
// iterations.
package envsync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"src.nsh.sh/pkg/config"
	"src.nsh.sh/pkg/env"
	"src.nsh.sh/pkg/eval"
	"src.nsh.sh/pkg/logutil"
	"src.nsh.sh/pkg/strutil"
)

var logger = logutil.GetLogger("[envsync] ")

// Syncer bridges the OS environment, the configuration snapshot and the
// shell scope. Every operation is best-effort: a failing sub-step degrades
// the session to stale environment data instead of terminating it.
type Syncer struct {
	cfg     config.Config
	envs    map[string]string
	lastDir string
}

// New returns a Syncer owning the given configuration snapshot.
func New(cfg config.Config) *Syncer {
	return &Syncer{cfg: cfg, envs: make(map[string]string)}
}

// Config returns the current configuration snapshot.
func (s *Syncer) Config() config.Config { return s.cfg }

// LoadEnvironment pulls the process environment into the internal cache,
// with the environment table captured in the configuration applied on top.
// It never fails.
func (s *Syncer) LoadEnvironment() {
	envs := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envs[k] = v
		}
	}
	if captured, ok := s.cfg.Env(); ok {
		for k, v := range captured {
			envs[k] = v
		}
	}
	s.envs = envs
}

// SyncEnvVars copies the cached environment into the scope's current frame.
// Re-running with an unchanged cache leaves the scope unchanged.
func (s *Syncer) SyncEnvVars(sc *eval.Scope) {
	for k, v := range s.envs {
		sc.SetEnv(k, v)
	}
}

// SyncPathVars writes the search-path list captured in the configuration
// into the scope's PATH variable. Without a captured list, the cached PATH
// entry is used instead.
func (s *Syncer) SyncPathVars(sc *eval.Scope) {
	if paths, ok := s.cfg.Path(); ok {
		sc.SetEnv(env.Path, strings.Join(paths, string(os.PathListSeparator)))
	} else if p, ok := s.envs[env.Path]; ok {
		sc.SetEnv(env.Path, p)
	}
}

// Autoenv applies directory-scoped environment hooks: when the current
// shell directory has changed since the last call and contains a .env file,
// its KEY=VALUE lines are loaded into the scope. The returned error is for
// reporting only and must not abort the session.
func (s *Syncer) Autoenv(ctx *eval.Context) error {
	dir := ctx.Shells.Path()
	if dir == "" || dir == s.lastDir {
		return nil
	}
	s.lastDir = dir

	bs, err := os.ReadFile(filepath.Join(dir, ".env"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("autoenv: %w", err)
	}
	logger.Println("autoenv: loading .env in", dir)
	for _, line := range strings.Split(string(bs), "\n") {
		line = strings.TrimSpace(strutil.ChopLineEnding(line))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("autoenv: not a KEY=VALUE line: %q", line)
		}
		ctx.Scope.SetEnv(strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return nil
}

// DidConfigChange reports whether the persisted configuration has drifted
// from the snapshot since the last load or reload.
func (s *Syncer) DidConfigChange() bool { return s.cfg.IsModified() }

// Reload replaces the configuration snapshot with a freshly loaded one from
// the same origin and refreshes the environment cache from it. It is safe
// to call repeatedly.
func (s *Syncer) Reload() {
	s.cfg = s.cfg.Reload()
	s.LoadEnvironment()
}
