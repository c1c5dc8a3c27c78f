// Command nsh is an interactive shell driving OS command pipelines.
package main

import (
	"os"

	"src.nsh.sh/pkg/buildinfo"
	"src.nsh.sh/pkg/oscmd"
	"src.nsh.sh/pkg/prog"
	"src.nsh.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			buildinfo.Program,
			shell.Program{Parser: oscmd.Parser(), Evaler: oscmd.Evaler()})))
}
