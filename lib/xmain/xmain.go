// Package xmain runs the vizlabels command: it wires stdio, environment backed
// flags and logging into a State and turns the returned error into an exit code.
package xmain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"

	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xdefer"
	"oss.terrastruct.com/xos"

	ctxlog "oss.terrastruct.com/vizcore/lib/log"
)

// StdioPath stands for stdin when reading and stdout when writing.
const StdioPath = "-"

// shutdownGrace bounds how long run gets to return once it was interrupted.
const shutdownGrace = 10 * time.Second

type RunFunc func(context.Context, *State) error

func Main(run RunFunc) {
	name := "vizlabels"
	var args []string
	if len(os.Args) > 0 {
		name = os.Args[0]
		args = os.Args[1:]
	}

	env := xos.NewEnv(os.Environ())
	l := cmdlog.Log(env, os.Stderr)
	ms := &State{
		Name:   name,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    l,
		Env:    env,
		Opts:   NewOpts(env, args),
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	code, msg := ExitCode(ms.Run(context.Background(), sigs, run))
	if msg != "" {
		l.Error.Print(msg)
	}
	os.Exit(code)
}

type State struct {
	Name string

	Stdin  io.Reader
	Stdout io.WriteCloser
	Stderr io.Writer

	Log  *cmdlog.Logger
	Env  *xos.Env
	Opts *Opts
}

// Run calls run and cancels its context on the first signal. A run that does
// not return within the grace period is abandoned.
func (ms *State) Run(ctx context.Context, sigs <-chan os.Signal, run RunFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, ms)
	}()

	var sig os.Signal
	select {
	case err := <-done:
		return err
	case sig = <-sigs:
	}

	ms.Log.Warn.Printf("received %v, stopping layout", sig)
	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		if sig == syscall.SIGTERM {
			return nil
		}
		return ExitError{Code: 130}
	case <-time.After(shutdownGrace):
		return ExitError{Code: 1, Message: fmt.Sprintf("layout did not stop within %v", shutdownGrace)}
	}
}

// ExitCode maps the error returned by Run to a process exit code and the
// message to print for it, if any.
func ExitCode(err error) (int, string) {
	if err == nil {
		return 0, ""
	}
	var eerr ExitError
	if errors.As(err, &eerr) {
		return eerr.Code, eerr.Message
	}
	var uerr UsageError
	if errors.As(err, &uerr) {
		return 2, err.Error() + "\nRun with --help to see usage."
	}
	return 1, err.Error()
}

type ExitError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (ee ExitError) Error() string {
	s := fmt.Sprintf("exiting with code %d", ee.Code)
	if ee.Message != "" {
		s += ": " + ee.Message
	}
	return s
}

type UsageError struct {
	Message string `json:"message"`
}

func UsageErrorf(msg string, v ...interface{}) UsageError {
	return UsageError{
		Message: fmt.Sprintf(msg, v...),
	}
}

func (ue UsageError) Error() string {
	return fmt.Sprintf("bad usage: %s", ue.Message)
}

// ReadPath reads fp, or stdin for StdioPath.
func (ms *State) ReadPath(fp string) ([]byte, error) {
	if fp == StdioPath {
		return io.ReadAll(ms.Stdin)
	}
	return os.ReadFile(fp)
}

// ReadJSON decodes the JSON document at fp into v.
func (ms *State) ReadJSON(fp string, v interface{}) (err error) {
	defer xdefer.Errorf(&err, "failed to read %s", fp)

	b, err := ms.ReadPath(fp)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// WriteJSON writes v as indented JSON to fp, or to stdout for StdioPath.
func (ms *State) WriteJSON(fp string, v interface{}) (err error) {
	defer xdefer.Errorf(&err, "failed to write %s", fp)

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if fp != StdioPath {
		return os.WriteFile(fp, b, 0644)
	}
	if _, err := ms.Stdout.Write(b); err != nil {
		return err
	}
	return ms.Stdout.Close()
}

// WithSlog attaches a human readable slog.Logger writing to Stderr to ctx for
// the library packages to log through.
func (ms *State) WithSlog(ctx context.Context, debug bool) context.Context {
	l := slog.Make(sloghuman.Sink(ms.Stderr))
	if debug {
		l = l.Leveled(slog.LevelDebug)
	}
	return ctxlog.With(ctx, l)
}
