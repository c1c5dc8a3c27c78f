package shell

import (
	"os"
	"path/filepath"

	"src.nsh.sh/pkg/config"
)

// Options captures a session's invocation-time settings. It is constructed
// once from command-line flags; the history path is filled in once
// configuration is loaded and Options is immutable afterwards.
type Options struct {
	ConfigPath  string
	HistoryPath string
	SaveHistory bool
	ReadStdin   bool
	Scripts     []Script
}

func (o *Options) fillHistoryPath(cfg config.Config) {
	if o.HistoryPath == "" {
		o.HistoryPath = historyPath(cfg)
	}
}

// historyPath resolves where command history is persisted: the
// "history_path" setting when present, otherwise ~/.nsh/history.db. An
// empty return disables persistence.
func historyPath(cfg config.Config) string {
	if path, ok := config.StringVar(cfg, "history_path"); ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nsh", "history.db")
}
