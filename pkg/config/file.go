package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"src.nsh.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[config] ")

// fileConfig is a Config loaded from a YAML file. Loading is best-effort: a
// missing, unreadable or malformed file yields an empty configuration, never
// an error, because the session must start regardless.
type fileConfig struct {
	path     string
	vars     map[string]any
	loadedAt modTime
}

// New returns a Config loaded from the default location.
func New() Config { return WithPath(DefaultPath()) }

// DefaultPath returns the default configuration file location,
// $HOME/.nsh/config.yaml, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nsh", "config.yaml")
}

// WithPath returns a Config loaded from the named file.
func WithPath(path string) Config {
	c := &fileConfig{path: path, vars: make(map[string]any)}
	c.loadedAt = lastModified(path)
	if path == "" {
		return c
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Println("read config:", err)
		}
		return c
	}
	var vars map[string]any
	if err := yaml.Unmarshal(bs, &vars); err != nil {
		logger.Println("parse config:", err)
		return c
	}
	if vars != nil {
		c.vars = vars
	}
	return c
}

func lastModified(path string) modTime {
	if path == "" {
		return modTime{}
	}
	info, err := os.Stat(path)
	if err != nil {
		return modTime{}
	}
	return modTime{known: true, d: info.ModTime().Sub(epoch)}
}

func (c *fileConfig) Var(name string) (any, bool) {
	v, ok := c.vars[name]
	return v, ok
}

func (c *fileConfig) Env() (map[string]string, bool) {
	table, ok := c.vars["env"].(map[string]any)
	if !ok {
		return nil, false
	}
	env := make(map[string]string, len(table))
	for k, v := range table {
		env[k] = fmt.Sprint(v)
	}
	return env, true
}

func (c *fileConfig) Path() ([]string, bool) {
	paths, err := StringsVar(c, "path")
	if err != nil || paths == nil {
		return nil, false
	}
	return paths, true
}

func (c *fileConfig) IsModified() bool {
	return changed(c.loadedAt, lastModified(c.path))
}

func (c *fileConfig) Reload() Config { return WithPath(c.path) }
