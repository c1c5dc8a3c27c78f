// Package oscmd implements the language capabilities on top of external
// operating system commands. The grammar is deliberately small: whitespace-
// separated words with single and double quotes, | pipelines that may
// continue across newlines, > output redirections, and the cd, echo and
// enter builtins. It is the default backend wired by cmd/nsh; a richer
// language can be swapped in through the eval.Parser and eval.Evaler
// interfaces without touching the session engine.
package oscmd

import (
	"fmt"
	"strings"

	"src.nsh.sh/pkg/eval"
)

// Parser returns the oscmd implementation of eval.Parser.
func Parser() eval.Parser { return parser{} }

type parser struct{}

// parseError is a parse error, possibly one that more input may resolve.
type parseError struct {
	msg        string
	offset     int
	incomplete bool
}

func (e *parseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.offset, e.msg)
}

// Incomplete reports whether the error was caused by the source ending in
// the middle of a construct.
func (e *parseError) Incomplete() bool { return e.incomplete }

// command is a single command invocation within a pipeline.
type command struct {
	words []string
	// redirect is the target file of a > redirection, or "".
	redirect string
}

type pipeline []command

// block is a parsed sequence of pipelines.
type block struct {
	pipes []pipeline
	// forceStdout suppresses > redirections when running the block.
	forceStdout bool
}

func (b *block) RedirectStdout() { b.forceStdout = true }

func (parser) Parse(text string, offset int, sc *eval.Scope) (eval.Block, error) {
	b := &block{}
	tz := &tokenizer{text: text, offset: offset}
	for {
		pipe, err := tz.pipeline()
		if err != nil {
			return b, err
		}
		if pipe != nil {
			b.pipes = append(b.pipes, pipe)
		}
		if tz.eof() {
			return b, nil
		}
	}
}

type tokenizer struct {
	text   string
	offset int
	pos    int
}

func (tz *tokenizer) eof() bool { return tz.pos >= len(tz.text) }

func (tz *tokenizer) errorf(incomplete bool, format string, args ...any) error {
	return &parseError{
		msg:        fmt.Sprintf(format, args...),
		offset:     tz.offset + tz.pos,
		incomplete: incomplete,
	}
}

// pipeline parses one newline-terminated pipeline. It returns a nil pipeline
// for a blank line.
func (tz *tokenizer) pipeline() (pipeline, error) {
	var pipe pipeline
	for {
		cmd, err := tz.command()
		if err != nil {
			return nil, err
		}
		if len(cmd.words) > 0 {
			pipe = append(pipe, cmd)
		}
		switch {
		case tz.eof() || tz.text[tz.pos] == '\n':
			tz.pos++
			if len(pipe) > 0 && len(cmd.words) == 0 {
				return nil, tz.errorf(false, "empty command in pipeline")
			}
			return pipe, nil
		case tz.text[tz.pos] == '|':
			tz.pos++
			if len(cmd.words) == 0 {
				return nil, tz.errorf(false, "empty command before |")
			}
			// A pipeline may continue on the next line.
			tz.skipSpace(true)
			if tz.eof() {
				return nil, tz.errorf(true, "pipeline ends with |")
			}
		}
	}
}

// command parses words up to a |, newline or end of input.
func (tz *tokenizer) command() (command, error) {
	var cmd command
	for {
		tz.skipSpace(false)
		if tz.eof() || tz.text[tz.pos] == '\n' || tz.text[tz.pos] == '|' {
			return cmd, nil
		}
		if tz.text[tz.pos] == '>' {
			tz.pos++
			tz.skipSpace(false)
			target, err := tz.word()
			if err != nil {
				return cmd, err
			}
			if target == "" {
				return cmd, tz.errorf(tz.eof(), "missing redirection target")
			}
			cmd.redirect = target
			continue
		}
		word, err := tz.word()
		if err != nil {
			return cmd, err
		}
		cmd.words = append(cmd.words, word)
	}
}

// word parses one possibly quoted word. It returns "" when the tokenizer is
// positioned at a word boundary.
func (tz *tokenizer) word() (string, error) {
	var sb strings.Builder
	for !tz.eof() {
		c := tz.text[tz.pos]
		switch c {
		case ' ', '\t', '\n', '|', '>':
			return sb.String(), nil
		case '\'', '"':
			quoted, err := tz.quoted(c)
			if err != nil {
				return "", err
			}
			sb.WriteString(quoted)
		case '\\':
			tz.pos++
			if tz.eof() {
				return "", tz.errorf(true, "trailing backslash")
			}
			sb.WriteByte(tz.text[tz.pos])
			tz.pos++
		default:
			sb.WriteByte(c)
			tz.pos++
		}
	}
	return sb.String(), nil
}

// quoted parses a quoted segment starting at the opening quote.
func (tz *tokenizer) quoted(quote byte) (string, error) {
	start := tz.pos
	tz.pos++
	for !tz.eof() {
		if tz.text[tz.pos] == quote {
			tz.pos++
			return tz.text[start+1 : tz.pos-1], nil
		}
		tz.pos++
	}
	tz.pos = start
	defer func() { tz.pos = len(tz.text) }()
	return "", tz.errorf(true, "unclosed %c quote", quote)
}

// skipSpace skips spaces and tabs, and also newlines when told to.
func (tz *tokenizer) skipSpace(andNewlines bool) {
	for !tz.eof() {
		switch tz.text[tz.pos] {
		case ' ', '\t':
			tz.pos++
		case '\n':
			if !andNewlines {
				return
			}
			tz.pos++
		default:
			return
		}
	}
}
