package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"testing"
)

func runApp(t *testing.T, app App, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	stdout, stderr = new(bytes.Buffer), new(bytes.Buffer)
	env := &Env{
		Args:   args,
		Getenv: func(string) string { return "" },
		Stdout: stdout,
		Stderr: stderr,
	}
	err = Run(WithEnv(context.Background(), env), app)
	return stdout, stderr, err
}

func TestRun(t *testing.T) {
	t.Parallel()

	var gotArgs []string
	app := AppFunc(func(ctx context.Context, env *Env) error {
		gotArgs = env.Args
		fmt.Fprintln(env.Stdout, "ran")
		return nil
	})

	stdout, _, err := runApp(t, app, "foo", "bar")
	if err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "ran\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "ran\n")
	}
	if len(gotArgs) != 2 || gotArgs[0] != "foo" || gotArgs[1] != "bar" {
		t.Errorf("env.Args = %v, want [foo bar]", gotArgs)
	}
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	app := AppFunc(func(ctx context.Context, env *Env) error {
		t.Error("app must not run when -version is passed")
		return nil
	})

	_, stderr, err := runApp(t, app, "-version")
	if !errors.Is(err, ErrExitVersion) {
		t.Fatalf("got error: %v", err)
	}
	if stderr.Len() == 0 {
		t.Error("version must be printed to stderr")
	}
	if isPrintableError(err) {
		t.Error("ErrExitVersion must not be printable")
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	app := AppFunc(func(ctx context.Context, env *Env) error { return nil })

	_, stderr, err := runApp(t, app, "-h")
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("got error: %v", err)
	}
	if stderr.Len() == 0 {
		t.Error("usage must be printed to stderr")
	}
	if isPrintableError(err) {
		t.Error("flag.ErrHelp must not be printable")
	}
}

func TestGetEnv(t *testing.T) {
	t.Parallel()

	env := &Env{Args: []string{"x"}}
	ctx := WithEnv(context.Background(), env)
	if got := GetEnv(ctx); got != env {
		t.Errorf("GetEnv returned %v, want %v", got, env)
	}

	// Without an attached environment, GetEnv falls back to the OS one.
	if got := GetEnv(context.Background()); got == nil || got.Getenv == nil {
		t.Error("GetEnv must fall back to OSEnv")
	}
}
