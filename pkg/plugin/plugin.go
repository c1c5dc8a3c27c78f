// Package plugin implements discovery of external plugin commands.
//
// Plugins are standalone executables named with the Prefix and found either
// next to the running binary or in directories named by the "plugin_dirs"
// setting. Discovery runs once at session startup; how the shell talks to a
// plugin binary afterwards is not this package's concern.
package plugin

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"src.nsh.sh/pkg/config"
	"src.nsh.sh/pkg/eval"
	"src.nsh.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[plugin] ")

// Prefix is the filename prefix that identifies a plugin binary. The
// command name is the rest of the filename.
const Prefix = "nsh-plugin-"

// Command is a discovered plugin binary, registrable in the evaluation
// context's command registry.
type Command struct {
	name string
	path string
}

func (c Command) Name() string { return c.name }

// Path returns the path of the plugin binary.
func (c Command) Path() string { return c.path }

// SearchPaths builds the ordered list of directories to scan: the directory
// containing the running executable, followed by the entries of the
// "plugin_dirs" setting. A missing setting is not an error; a setting of the
// wrong shape is, but the directories resolved so far are still returned.
func SearchPaths(cfg config.Config) ([]string, error) {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	} else {
		logger.Printf("cannot determine executable path: %v", err)
	}
	configured, err := config.StringsVar(cfg, "plugin_dirs")
	if err != nil {
		return dirs, err
	}
	return append(dirs, configured...), nil
}

// Scan walks the given directories in order and returns the plugin commands
// found. Unreadable directories are skipped; within a directory, anything
// that is not an executable regular file with the Prefix is ignored.
func Scan(dirs []string) []Command {
	var cmds []Command
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Printf("skipping plugin directory %s: %v", dir, err)
			continue
		}
		for _, entry := range entries {
			name, ok := commandName(entry)
			if !ok {
				continue
			}
			cmds = append(cmds, Command{name: name, path: filepath.Join(dir, entry.Name())})
		}
	}
	return cmds
}

func commandName(entry os.DirEntry) (string, bool) {
	if entry.IsDir() {
		return "", false
	}
	name := entry.Name()
	if runtime.GOOS == "windows" {
		name = strings.TrimSuffix(name, ".exe")
	} else {
		info, err := entry.Info()
		if err != nil || info.Mode().Perm()&0o111 == 0 {
			return "", false
		}
	}
	rest := strings.TrimPrefix(name, Prefix)
	if rest == name || rest == "" {
		return "", false
	}
	return rest, true
}

// Register adds the commands to the context's registry, preserving
// first-registered-wins semantics: a command whose name is already taken is
// silently dropped. It returns the number of commands actually registered.
func Register(ctx *eval.Context, cmds []Command) int {
	n := 0
	for _, cmd := range cmds {
		if ctx.HasCommand(cmd.Name()) {
			continue
		}
		ctx.AddCommand(cmd)
		n++
	}
	return n
}
