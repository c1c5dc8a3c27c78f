// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.nsh.sh/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"src.nsh.sh/pkg/prog"
)

// Version identifies the version of nsh. On development commits, it
// identifies the next release.
const Version = "v0.1.0"

// VersionSuffix is appended to Version in the output of "nsh -version" and
// "nsh -buildinfo" to build the full version string. This can be overridden
// when building nsh.
var VersionSuffix = "-dev.unknown"

// FullVersion returns the version string as shown by "nsh -version".
func FullVersion() string { return Version + VersionSuffix }

// Program is the buildinfo subprogram. It is only suitable when -version or
// -buildinfo was given.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	switch {
	case f.BuildInfo:
		if f.JSON {
			fmt.Fprintf(fds[1], `{"version":%s,"goversion":%s}`+"\n",
				quoteJSON(FullVersion()), quoteJSON(runtime.Version()))
		} else {
			fmt.Fprintln(fds[1], "Version:", FullVersion())
			fmt.Fprintln(fds[1], "Go version:", runtime.Version())
		}
	case f.Version:
		if f.JSON {
			fmt.Fprintln(fds[1], quoteJSON(FullVersion()))
		} else {
			fmt.Fprintln(fds[1], FullVersion())
		}
	default:
		return prog.ErrNotSuitable
	}
	return nil
}

func quoteJSON(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// Strings always marshal.
		panic(err)
	}
	return string(b)
}
