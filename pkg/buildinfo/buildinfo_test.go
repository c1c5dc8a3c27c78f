package buildinfo

import (
	"fmt"
	"runtime"
	"testing"

	"src.nsh.sh/pkg/prog"
	"src.nsh.sh/pkg/prog/progtest"
)

func TestVersion(t *testing.T) {
	f := progtest.Setup(t)
	exit := prog.Run(f.Fds(), []string{"nsh", "-version"}, Program)
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOut(t, 1, FullVersion()+"\n")
}

func TestVersion_JSON(t *testing.T) {
	f := progtest.Setup(t)
	prog.Run(f.Fds(), []string{"nsh", "-version", "-json"}, Program)
	f.TestOut(t, 1, quoteJSON(FullVersion())+"\n")
}

func TestBuildInfo(t *testing.T) {
	f := progtest.Setup(t)
	prog.Run(f.Fds(), []string{"nsh", "-buildinfo"}, Program)
	f.TestOut(t, 1, fmt.Sprintf(
		"Version: %s\nGo version: %s\n", FullVersion(), runtime.Version()))
}

func TestBuildInfo_JSON(t *testing.T) {
	f := progtest.Setup(t)
	prog.Run(f.Fds(), []string{"nsh", "-buildinfo", "-json"}, Program)
	f.TestOut(t, 1, fmt.Sprintf(
		`{"version":%s,"goversion":%s}`+"\n",
		quoteJSON(FullVersion()), quoteJSON(runtime.Version())))
}

func TestNotSuitable(t *testing.T) {
	f := progtest.Setup(t)
	exit := prog.Run(f.Fds(), []string{"nsh"}, Program)
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestOutSnippet(t, 2, "internal error: no suitable subprogram")
}
