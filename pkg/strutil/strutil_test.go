package strutil

import (
	"testing"

	"src.nsh.sh/pkg/tt"
)

func TestChopLineEnding(t *testing.T) {
	tt.Test(t, tt.Fn("ChopLineEnding", ChopLineEnding), tt.Table{
		tt.Args("").Rets(""),
		tt.Args("text").Rets("text"),
		tt.Args("text\n").Rets("text"),
		tt.Args("text\r\n").Rets("text"),
		// Only chop off one line ending.
		tt.Args("text\n\n").Rets("text\n"),
		// Preserve a lone \r.
		tt.Args("text\r").Rets("text\r"),
	})
}

func TestStripANSI(t *testing.T) {
	tt.Test(t, tt.Fn("StripANSI", StripANSI), tt.Table{
		tt.Args("").Rets(""),
		tt.Args("plain> ").Rets("plain> "),
		tt.Args("\x1b[32m/tmp\x1b[m> ").Rets("/tmp> "),
		tt.Args("\x1b[1;31mred\x1b[0m").Rets("red"),
		// Non-CSI two-byte escape sequence.
		tt.Args("a\x1bcb").Rets("ab"),
	})
}
