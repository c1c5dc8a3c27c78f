// Package strutil contains string utilities.
package strutil

import "strings"

// ChopLineEnding removes a line ending ("\r\n" or "\n") from the end of s. It
// returns s itself if it doesn't end with a line ending.
func ChopLineEnding(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	} else if strings.HasSuffix(s, "\n") {
		return s[:len(s)-1]
	}
	return s
}

// StripANSI removes ANSI escape sequences from s. It is used wherever the
// visual width of a string matters, like the prompt given to the line editor.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\x1b' {
			sb.WriteByte(s[i])
			continue
		}
		i++
		if i < len(s) && s[i] == '[' {
			// CSI sequence: parameter and intermediate bytes, then one
			// final byte in the range 0x40-0x7e.
			for i++; i < len(s) && (s[i] < 0x40 || s[i] > 0x7e); i++ {
			}
		}
		// Other escape sequences consist of ESC and a single byte, which the
		// loop increment skips.
	}
	return sb.String()
}
