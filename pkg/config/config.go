// Package config provides read-only access to persisted shell settings,
// along with a probe that detects when the persisted source has been
// modified behind the running session's back.
package config

import (
	"fmt"
	"time"
)

// Config is the capability interface over a loaded configuration snapshot.
// There are two implementations: the YAML file-backed one returned by New
// and WithPath, and the in-memory FakeConfig for tests. Both follow the same
// modification detection semantics: two snapshots differ exactly when both
// of their last-modified timestamps are known and, reduced to durations
// since the Unix epoch, are unequal. An absent or unreadable source is never
// considered modified, so a session conservatively stays on its current
// settings.
type Config interface {
	// Var returns the value of a named setting.
	Var(name string) (any, bool)
	// Env returns the environment table captured in the configuration.
	Env() (map[string]string, bool)
	// Path returns the search-path list captured in the configuration.
	Path() ([]string, bool)
	// IsModified reports whether the persisted source has changed since
	// this snapshot was loaded.
	IsModified() bool
	// Reload returns an independent snapshot freshly loaded from the same
	// origin.
	Reload() Config
}

// modTime is a file modification timestamp reduced to a duration since the
// Unix epoch, or unknown when the file is absent or unreadable.
type modTime struct {
	known bool
	d     time.Duration
}

var epoch = time.Unix(0, 0)

func changed(loaded, current modTime) bool {
	return loaded.known && current.known && loaded.d != current.d
}

// BoolVar returns the named setting as a bool, or fallback when the setting
// is absent or not a bool.
func BoolVar(c Config, name string, fallback bool) bool {
	if v, ok := c.Var(name); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// StringVar returns the named setting as a string.
func StringVar(c Config, name string) (string, bool) {
	if v, ok := c.Var(name); ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// StringsVar returns the named setting as a table of strings. An absent
// setting yields a nil table and a nil error; a setting with any other shape
// yields an error.
func StringsVar(c Config, name string) ([]string, error) {
	v, ok := c.Var(name)
	if !ok {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a table of strings", name)
	}
	strs := make([]string, len(list))
	for i, elem := range list {
		s, ok := elem.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected a string", name, i)
		}
		strs[i] = s
	}
	return strs, nil
}
