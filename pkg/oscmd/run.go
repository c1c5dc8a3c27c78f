package oscmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"src.nsh.sh/pkg/env"
	"src.nsh.sh/pkg/eval"
	"src.nsh.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[oscmd] ")

// Evaler returns the oscmd implementation of eval.Evaler.
func Evaler() eval.Evaler { return evaler{} }

type evaler struct{}

// Run executes the block's pipelines in order. The first pipeline consumes
// the given input stream; the collected output of all pipelines becomes the
// result stream.
//
// A failing command (unknown name or non-zero exit) is a non-fatal error
// accumulated on the context; only plumbing failures and interruption are
// returned as hard errors. The cancellation flag is observed between
// commands, leaving the flag set for the session loop to absorb.
func (evaler) Run(b eval.Block, ctx *eval.Context, input eval.Stream) (eval.Stream, error) {
	blk, ok := b.(*block)
	if !ok {
		return nil, fmt.Errorf("oscmd: cannot run a foreign block type %T", b)
	}
	stdin, err := input.CollectString()
	if err != nil {
		return nil, err
	}

	var out strings.Builder
	for _, pipe := range blk.pipes {
		if ctx.InterruptPending() {
			return nil, eval.ErrInterrupted
		}
		text, err := runPipeline(pipe, ctx, stdin, blk.forceStdout)
		if err != nil {
			return nil, err
		}
		out.WriteString(text)
		stdin = ""
	}
	return eval.NewStringStream(out.String()), nil
}

func runPipeline(pipe pipeline, ctx *eval.Context, stdin string, forceStdout bool) (string, error) {
	text := stdin
	var redirect string
	for _, cmd := range pipe {
		if ctx.InterruptPending() {
			return "", eval.ErrInterrupted
		}
		var err error
		text, err = runCommand(cmd, ctx, text)
		if err != nil {
			return "", err
		}
		if cmd.redirect != "" {
			redirect = cmd.redirect
		}
	}
	if redirect != "" && !forceStdout {
		dst := redirect
		if !filepath.IsAbs(dst) {
			dst = filepath.Join(ctx.Shells.Path(), dst)
		}
		if err := os.WriteFile(dst, []byte(text), 0o644); err != nil {
			return "", fmt.Errorf("redirect to %s: %w", redirect, err)
		}
		return "", nil
	}
	return text, nil
}

func runCommand(cmd command, ctx *eval.Context, stdin string) (string, error) {
	name, args := cmd.words[0], cmd.words[1:]
	switch name {
	case "cd":
		return "", chdir(ctx, args)
	case "echo":
		return strings.Join(args, " ") + "\n", nil
	case "enter":
		return "", enterShell(ctx, args)
	}
	return runExternal(name, args, ctx, stdin)
}

// chdir implements the cd builtin: it moves the current shell context, not
// the process working directory.
func chdir(ctx *eval.Context, args []string) error {
	var dir string
	switch len(args) {
	case 0:
		home, err := os.UserHomeDir()
		if err != nil {
			ctx.AddError(fmt.Errorf("cd: %w", err))
			return nil
		}
		dir = home
	case 1:
		dir = resolve(ctx, args[0])
	default:
		ctx.AddError(fmt.Errorf("cd: too many arguments"))
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		ctx.AddError(fmt.Errorf("cd: no such directory: %s", dir))
		return nil
	}
	ctx.Shells.SetPath(dir)
	ctx.Scope.SetGlobalEnv(env.Pwd, dir)
	return nil
}

// enterShell implements the enter builtin: it opens a new shell context at
// the given directory, leaving the current one to return to.
func enterShell(ctx *eval.Context, args []string) error {
	if len(args) != 1 {
		ctx.AddError(fmt.Errorf("enter: expected one directory argument"))
		return nil
	}
	dir := resolve(ctx, args[0])
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		ctx.AddError(fmt.Errorf("enter: no such directory: %s", dir))
		return nil
	}
	ctx.Shells.Enter(dir)
	ctx.Scope.SetGlobalEnv(env.Pwd, dir)
	return nil
}

func resolve(ctx *eval.Context, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(ctx.Shells.Path(), path)
}

func runExternal(name string, args []string, ctx *eval.Context, stdin string) (string, error) {
	c := exec.Command(name, args...)
	c.Dir = ctx.Shells.Path()
	// The shell manager is the authority on the directory: leaving a shell
	// context does not rewrite the scope's PWD.
	c.Env = append(environSlice(ctx.Scope), env.Pwd+"="+ctx.Shells.Path())
	c.Stdin = strings.NewReader(stdin)
	var stderr strings.Builder
	c.Stderr = &stderr

	out, err := c.Output()
	if err != nil {
		logger.Printf("external command %s: %v", name, err)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			ctx.AddError(fmt.Errorf("%s: %v: %s", name, err, msg))
		} else {
			ctx.AddError(fmt.Errorf("%s: %v", name, err))
		}
		return "", nil
	}
	return string(out), nil
}


func environSlice(sc *eval.Scope) []string {
	envs := sc.Envs()
	kvs := make([]string, 0, len(envs))
	for k, v := range envs {
		kvs = append(kvs, k+"="+v)
	}
	return kvs
}
