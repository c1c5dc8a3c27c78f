// Package env keeps names of environment variables that have special
// significance to nsh.
package env

// Environment variables read or written by nsh.
const (
	CmdDuration = "CMD_DURATION"
	Home        = "HOME"
	Path        = "PATH"
	Pwd         = "PWD"
)
