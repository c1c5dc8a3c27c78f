package testutil

import (
	"os"
	"path/filepath"

	"src.nsh.sh/pkg/must"
)

// TempDir creates a temporary directory for the duration of the test, and
// returns the path of the temporary directory. The path has symlinks
// resolved with filepath.EvalSymlinks.
//
// It panics if the test directory cannot be created or symlinks cannot be
// resolved. It is only suitable for use in tests.
func TempDir(c Cleanuper) string {
	dir := must.OK1(os.MkdirTemp("", "nsh-test"))
	// On macOS os.MkdirTemp returns a path under /var, which is a symlink
	// to /private/var; resolve it so that path comparisons in tests work.
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	c.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// InTempDir is like TempDir, but also changes into the temporary directory,
// changing back when the test finishes.
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	oldWd := must.OK1(os.Getwd())
	must.OK(os.Chdir(dir))
	c.Cleanup(func() { must.OK(os.Chdir(oldWd)) })
	return dir
}
