package testcase

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"debuggee/internal/config"
	"debuggee/internal/errors"
	"debuggee/internal/log"
	"debuggee/internal/values"
)

// Child is a spawned process the spawn testcase waits on.
type Child interface {
	Pid() int
	Wait() error
}

// SpawnFunc starts a copy of the running binary with args.
type SpawnFunc func(ctx context.Context, args ...string) (Child, error)

// Runner executes testcases. The binary builds one Runner per invocation and
// runs exactly one testcase with it.
type Runner struct {
	stdout    io.Writer
	stderr    io.Writer
	sleepFor  time.Duration
	tick      time.Duration
	childArgs []string
	spawn     SpawnFunc
	sleep     func(ctx context.Context, d time.Duration) error
	logger    *log.Logger
}

// NewRunner creates a Runner writing to the process's stdout and stderr.
func NewRunner(cfg *config.Config, logger *log.Logger, spawn SpawnFunc) *Runner {
	return &Runner{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		sleepFor:  cfg.SleepFor,
		tick:      cfg.Tick,
		childArgs: cfg.ChildArgs(),
		spawn:     spawn,
		sleep:     sleepContext,
		logger:    logger,
	}
}

// Run dispatches name to its testcase. Names missing from the catalog
// resolve to the value-shape exercises. The panic testcase does not return.
func (r *Runner) Run(ctx context.Context, name string) error {
	tc, named := Lookup(name)
	r.logger.Zap().Debug("dispatching testcase",
		zap.String("testcase", name),
		zap.String("resolved", tc.Name),
		zap.Bool("named", named))

	switch tc.Name {
	case Stdio:
		return r.Stdio()
	case Panic:
		r.Panic()
		return nil
	case Spawn:
		return r.Spawn(ctx)
	case Sleep:
		return r.Sleep(ctx)
	case InfLoop:
		return r.InfLoop(ctx)
	default:
		r.Values()
		return nil
	}
}

// Stdio writes one line to stdout and one line to stderr.
func (r *Runner) Stdio() error {
	if _, err := fmt.Fprintln(r.stdout, "stdout"); err != nil {
		return errors.NewOutputError("stdout", err)
	}
	if _, err := fmt.Fprintln(r.stderr, "stderr"); err != nil {
		return errors.NewOutputError("stderr", err)
	}
	return nil
}

// Panic crashes the process with PanicMessage. Deferred calls still run
// while the panic unwinds, so the caller's logger.Close flushes this entry.
func (r *Runner) Panic() {
	r.logger.Zap().Warn("panicking", zap.String("message", PanicMessage))
	panic(PanicMessage)
}

// Spawn starts the sleep testcase in a child process, prints its pid and
// waits for it to exit.
func (r *Runner) Spawn(ctx context.Context) error {
	child, err := r.spawn(ctx, r.childArgs...)
	if err != nil {
		return err
	}

	r.logger.SetChildPid(child.Pid())
	if _, err := fmt.Fprintf(r.stdout, "pid = %d\n", child.Pid()); err != nil {
		return errors.NewOutputError("stdout", err)
	}

	return child.Wait()
}

// Sleep blocks for the configured duration.
func (r *Runner) Sleep(ctx context.Context) error {
	return r.sleep(ctx, r.sleepFor)
}

// InfLoop rewrites an incrementing counter on one line, pausing one tick
// between updates. It only returns when ctx is cancelled or stdout fails.
func (r *Runner) InfLoop(ctx context.Context) error {
	for i := int64(0); ; i++ {
		if _, err := fmt.Fprintf(r.stdout, "\r%d ", i); err != nil {
			return errors.NewOutputError("stdout", err)
		}
		if err := r.sleep(ctx, r.tick); err != nil {
			return err
		}
	}
}

// Values runs every value-shape exercise in order, logging each step.
func (r *Runner) Values() {
	values.All(func(e values.Exercise) {
		r.logger.Zap().Debug("running exercise", zap.String("exercise", e.Name))
	})
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
