package oscmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.nsh.sh/pkg/env"
	"src.nsh.sh/pkg/eval"
	"src.nsh.sh/pkg/must"
	"src.nsh.sh/pkg/testutil"
)

type nopHost struct{}

func (nopHost) Stdout(string)  {}
func (nopHost) PrintErr(error) {}

func run(t *testing.T, ctx *eval.Context, text string) (string, error) {
	t.Helper()
	b, err := Parser().Parse(text, 0, ctx.Scope)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	out, err := Evaler().Run(b, ctx, eval.EmptyStream())
	if err != nil {
		return "", err
	}
	return must.OK1(out.CollectString()), nil
}

func TestRun_EchoBuiltin(t *testing.T) {
	ctx := eval.NewContext(nopHost{})
	out, err := run(t, ctx, "echo hello world")
	if err != nil {
		t.Fatal(err)
	}
	if out != "hello world\n" {
		t.Errorf("output %q, want %q", out, "hello world\n")
	}
}

func TestRun_MultipleLines(t *testing.T) {
	ctx := eval.NewContext(nopHost{})
	out, err := run(t, ctx, "echo a\necho b\n")
	if err != nil {
		t.Fatal(err)
	}
	if out != "a\nb\n" {
		t.Errorf("output %q, want %q", out, "a\nb\n")
	}
}

func TestRun_CdMovesShellContext(t *testing.T) {
	dir := testutil.TempDir(t)
	sub := filepath.Join(dir, "sub")
	must.MkdirAll(sub)

	ctx := eval.NewContext(nopHost{})
	ctx.Shells.SetPath(dir)
	if _, err := run(t, ctx, "cd sub"); err != nil {
		t.Fatal(err)
	}
	if got := ctx.Shells.Path(); got != sub {
		t.Errorf("shell path = %q, want %q", got, sub)
	}
	if v, _ := ctx.Scope.Env(env.Pwd); v != sub {
		t.Errorf("PWD = %q, want %q", v, sub)
	}
	// The process working directory is not touched.
	if wd := must.OK1(os.Getwd()); wd == sub {
		t.Error("cd changed the process working directory")
	}

	// cd into a nonexistent directory is a soft error.
	if _, err := run(t, ctx, "cd nonexistent"); err != nil {
		t.Fatal(err)
	}
	if errs := ctx.TakeErrors(); len(errs) != 1 {
		t.Errorf("accumulated %d errors, want 1", len(errs))
	}
	if got := ctx.Shells.Path(); got != sub {
		t.Errorf("failed cd moved the shell to %q", got)
	}
}

func TestRun_CdPwdSurvivesLineFrame(t *testing.T) {
	dir := testutil.TempDir(t)
	sub := filepath.Join(dir, "sub")
	must.MkdirAll(sub)

	// Session lines run inside a nested frame; the directory change must
	// still be visible after the frame is popped.
	ctx := eval.NewContext(nopHost{})
	ctx.Shells.SetPath(dir)
	exit := ctx.Scope.Enter()
	if _, err := run(t, ctx, "cd sub"); err != nil {
		t.Fatal(err)
	}
	exit()
	if v, _ := ctx.Scope.Env(env.Pwd); v != sub {
		t.Errorf("after popping the frame, PWD = %q, want %q", v, sub)
	}

	exit = ctx.Scope.Enter()
	if _, err := run(t, ctx, "enter "+dir); err != nil {
		t.Fatal(err)
	}
	exit()
	if v, _ := ctx.Scope.Env(env.Pwd); v != dir {
		t.Errorf("after popping the frame, PWD = %q, want %q", v, dir)
	}
}

func TestRun_EnterOpensNewShellContext(t *testing.T) {
	dir := testutil.TempDir(t)
	sub := filepath.Join(dir, "sub")
	must.MkdirAll(sub)

	ctx := eval.NewContext(nopHost{})
	ctx.Shells.SetPath(dir)
	if _, err := run(t, ctx, "enter sub"); err != nil {
		t.Fatal(err)
	}
	if ctx.Shells.Count() != 2 {
		t.Fatalf("shell count = %d, want 2", ctx.Shells.Count())
	}
	if got := ctx.Shells.Path(); got != sub {
		t.Errorf("shell path = %q, want %q", got, sub)
	}

	ctx.Shells.RemoveCurrent()
	if got := ctx.Shells.Path(); got != dir {
		t.Errorf("after leaving, shell path = %q, want %q", got, dir)
	}
}

func TestRun_RedirectWritesFile(t *testing.T) {
	dir := testutil.TempDir(t)
	ctx := eval.NewContext(nopHost{})
	ctx.Shells.SetPath(dir)

	out, err := run(t, ctx, "echo hi > out.txt")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("redirected pipeline produced output %q", out)
	}
	content := must.OK1(os.ReadFile(filepath.Join(dir, "out.txt")))
	if string(content) != "hi\n" {
		t.Errorf("file content %q, want %q", content, "hi\n")
	}
}

func TestRun_RedirectStdoutOverridesRedirect(t *testing.T) {
	dir := testutil.TempDir(t)
	ctx := eval.NewContext(nopHost{})
	ctx.Shells.SetPath(dir)

	b, err := Parser().Parse("echo hi > out.txt", 0, ctx.Scope)
	if err != nil {
		t.Fatal(err)
	}
	b.RedirectStdout()
	out, err := Evaler().Run(b, ctx, eval.EmptyStream())
	if err != nil {
		t.Fatal(err)
	}
	if got := must.OK1(out.CollectString()); got != "hi\n" {
		t.Errorf("output %q, want %q", got, "hi\n")
	}
	if _, err := os.Stat(filepath.Join(dir, "out.txt")); !os.IsNotExist(err) {
		t.Error("redirection target was written despite RedirectStdout")
	}
}

func TestRun_UnknownCommandIsSoftError(t *testing.T) {
	ctx := eval.NewContext(nopHost{})
	out, err := run(t, ctx, "definitely-not-a-command-nsh-test")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("unknown command produced output %q", out)
	}
	if errs := ctx.TakeErrors(); len(errs) != 1 {
		t.Errorf("accumulated %d errors, want 1", len(errs))
	}
}

func TestRun_InterruptAbortsEarly(t *testing.T) {
	ctx := eval.NewContext(nopHost{})
	ctx.Interrupt()
	_, err := run(t, ctx, "echo a")
	if !errors.Is(err, eval.ErrInterrupted) {
		t.Errorf("err = %v, want ErrInterrupted", err)
	}
	// The flag is left set for the session loop to absorb.
	if !ctx.InterruptPending() {
		t.Error("interrupt flag was cleared by the evaler")
	}
}

func TestRun_ExternalPipeline(t *testing.T) {
	if _, err := os.Stat("/usr/bin/tr"); err != nil {
		t.Skipf("no /usr/bin/tr: %v", err)
	}
	ctx := eval.NewContext(nopHost{})
	out, err := run(t, ctx, "echo hello | tr a-z A-Z")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "HELLO" {
		t.Errorf("output %q, want HELLO", out)
	}
}
