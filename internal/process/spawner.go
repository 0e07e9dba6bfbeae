// Package process starts copies of the running binary as child processes.
// Only one child is ever alive at a time and it is always waited on, so the
// harness can observe a parent that blocks on a known pid.
package process

import (
	"context"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"debuggee/internal/errors"
)

// Child is a started child process.
type Child struct {
	path   string
	cmd    *exec.Cmd
	logger *zap.Logger
}

// Pid returns the operating system process id of the child.
func (c *Child) Pid() int {
	return c.cmd.Process.Pid
}

// Wait blocks until the child exits. A non-zero exit status is reported as
// a wait error wrapping the *exec.ExitError.
func (c *Child) Wait() error {
	err := c.cmd.Wait()
	if err != nil {
		c.logger.Debug("child wait failed", zap.Int("child_pid", c.Pid()), zap.Error(err))
		return errors.NewWaitError(c.path, c.Pid(), err)
	}
	c.logger.Debug("child exited", zap.Int("child_pid", c.Pid()),
		zap.Int("exit_code", c.cmd.ProcessState.ExitCode()))
	return nil
}

// Spawner launches the current executable with new arguments.
type Spawner struct {
	logger     *zap.Logger
	executable func() (string, error)
}

// NewSpawner creates a Spawner that resolves the binary with os.Executable.
func NewSpawner(logger *zap.Logger) *Spawner {
	return &Spawner{
		logger:     logger,
		executable: os.Executable,
	}
}

// Executable returns the absolute path of the running binary.
func (s *Spawner) Executable() (string, error) {
	path, err := s.executable()
	if err != nil {
		return "", errors.NewExecutableError(err)
	}
	return path, nil
}

// Spawn starts the running binary with args. The child shares the parent's
// stdin, stdout and stderr. ctx only guards the start; a started child is
// never killed by the parent.
func (s *Spawner) Spawn(ctx context.Context, args ...string) (*Child, error) {
	path, err := s.Executable()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.NewSpawnError(path, err)
	}

	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, errors.NewSpawnError(path, err)
	}

	s.logger.Debug("child started",
		zap.String("path", path),
		zap.Strings("args", args),
		zap.Int("child_pid", cmd.Process.Pid))

	return &Child{path: path, cmd: cmd, logger: s.logger}, nil
}
