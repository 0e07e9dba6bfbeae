package testcase

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"debuggee/internal/config"
	derrors "debuggee/internal/errors"
	"debuggee/internal/log"
	"debuggee/internal/values"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeChild struct {
	pid     int
	waitErr error
	waited  bool
}

func (c *fakeChild) Pid() int { return c.pid }

func (c *fakeChild) Wait() error {
	c.waited = true
	return c.waitErr
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func newTestRunner(t *testing.T, spawn SpawnFunc) (*Runner, *bytes.Buffer, *bytes.Buffer, *observer.ObservedLogs) {
	t.Helper()

	cfg := &config.Config{Testcase: "test"}
	require.NoError(t, cfg.Validate())

	core, logs := observer.New(zapcore.DebugLevel)
	r := NewRunner(cfg, log.NewLoggerWithCore(cfg, core), spawn)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	r.stdout = stdout
	r.stderr = stderr
	return r, stdout, stderr, logs
}

func TestStdio(t *testing.T) {
	r, stdout, stderr, _ := newTestRunner(t, nil)

	require.NoError(t, r.Run(context.Background(), Stdio))
	assert.Equal(t, "stdout\n", stdout.String())
	assert.Equal(t, "stderr\n", stderr.String())
}

func TestStdioWriteFailure(t *testing.T) {
	r, _, _, _ := newTestRunner(t, nil)
	r.stdout = failingWriter{}

	err := r.Stdio()
	require.Error(t, err)
	assert.ErrorIs(t, err, &derrors.DebuggeeError{Type: derrors.ErrTypeOutput})
}

func TestPanic(t *testing.T) {
	r, _, _, _ := newTestRunner(t, nil)

	assert.PanicsWithValue(t, PanicMessage, func() {
		_ = r.Run(context.Background(), Panic)
	})
}

func TestSpawnPrintsPidAndWaits(t *testing.T) {
	child := &fakeChild{pid: 4321}
	var gotArgs []string
	spawn := func(_ context.Context, args ...string) (Child, error) {
		gotArgs = args
		return child, nil
	}
	r, stdout, _, _ := newTestRunner(t, spawn)

	require.NoError(t, r.Run(context.Background(), Spawn))
	assert.Equal(t, "pid = 4321\n", stdout.String())
	assert.True(t, child.waited)
	assert.Equal(t, []string{"--sleep-for", config.DefaultSleepFor.String(), "sleep"}, gotArgs)
	assert.Equal(t, 4321, r.logger.Finish(nil).ChildPid)
}

func TestSpawnFailures(t *testing.T) {
	startErr := derrors.NewSpawnError("/bin/debuggee", errors.New("exec format error"))
	waitErr := derrors.NewWaitError("/bin/debuggee", 9, errors.New("exit status 1"))

	tests := []struct {
		name      string
		spawn     SpawnFunc
		wantErr   error
		wantPrint bool
	}{
		{
			name: "start fails",
			spawn: func(context.Context, ...string) (Child, error) {
				return nil, startErr
			},
			wantErr:   startErr,
			wantPrint: false,
		},
		{
			name: "wait fails",
			spawn: func(context.Context, ...string) (Child, error) {
				return &fakeChild{pid: 9, waitErr: waitErr}, nil
			},
			wantErr:   waitErr,
			wantPrint: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, stdout, _, _ := newTestRunner(t, tt.spawn)

			err := r.Run(context.Background(), Spawn)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantPrint, strings.HasPrefix(stdout.String(), "pid = "))
		})
	}
}

func TestSleepUsesConfiguredDuration(t *testing.T) {
	r, _, _, _ := newTestRunner(t, nil)
	r.sleepFor = 1234 * time.Millisecond

	var slept time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		slept = d
		return nil
	}

	require.NoError(t, r.Run(context.Background(), Sleep))
	assert.Equal(t, 1234*time.Millisecond, slept)
}

func TestSleepBlocks(t *testing.T) {
	r, _, _, _ := newTestRunner(t, nil)
	r.sleepFor = 50 * time.Millisecond

	start := time.Now()
	require.NoError(t, r.Sleep(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestSleepCancelled(t *testing.T) {
	r, _, _, _ := newTestRunner(t, nil)
	r.sleepFor = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Sleep(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInfLoopCountsUntilCancelled(t *testing.T) {
	r, stdout, _, _ := newTestRunner(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := 0
	r.sleep = func(ctx context.Context, d time.Duration) error {
		assert.Equal(t, config.DefaultTick, d)
		ticks++
		if ticks == 5 {
			cancel()
		}
		return ctx.Err()
	}

	err := r.Run(ctx, InfLoop)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "\r0 \r1 \r2 \r3 \r4 ", stdout.String())
}

func TestInfLoopWithRealTimer(t *testing.T) {
	r, stdout, _, _ := newTestRunner(t, nil)
	r.tick = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, r.InfLoop(ctx), context.DeadlineExceeded)

	var last int64 = -1
	for _, field := range strings.Split(strings.TrimPrefix(stdout.String(), "\r"), "\r") {
		n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		require.NoError(t, err)
		assert.Equal(t, last+1, n, "counter must increase by one")
		last = n
	}
	assert.Greater(t, last, int64(0))
}

func TestInfLoopWriteFailure(t *testing.T) {
	r, _, _, _ := newTestRunner(t, nil)
	r.stdout = failingWriter{}

	err := r.InfLoop(context.Background())
	assert.ErrorIs(t, err, &derrors.DebuggeeError{Type: derrors.ErrTypeOutput})
}

func TestRunLogsResolvedTestcase(t *testing.T) {
	tests := []struct {
		name      string
		wantName  string
		wantNamed bool
	}{
		{Stdio, Stdio, true},
		{Values, Values, true},
		{"enums", Values, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _, logs := newTestRunner(t, nil)
			require.NoError(t, r.Run(context.Background(), tt.name))

			entries := logs.FilterMessage("dispatching testcase").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, tt.name, fields["testcase"])
			assert.Equal(t, tt.wantName, fields["resolved"])
			assert.Equal(t, tt.wantNamed, fields["named"])
		})
	}
}

func TestPanicLogsBeforeUnwinding(t *testing.T) {
	r, _, _, logs := newTestRunner(t, nil)

	assert.Panics(t, func() { r.Panic() })
	entries := logs.FilterMessage("panicking").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestUnknownIdentifierRunsValues(t *testing.T) {
	for _, name := range []string{Values, "", "anything-else", "STDIO"} {
		t.Run(name, func(t *testing.T) {
			values.Reset()
			r, stdout, stderr, logs := newTestRunner(t, nil)

			require.NoError(t, r.Run(context.Background(), name))
			assert.Empty(t, stdout.String())
			assert.Empty(t, stderr.String())

			for _, e := range values.Exercises() {
				_, ok := values.Seen(e.Name)
				assert.True(t, ok, "exercise %s did not run", e.Name)
			}
			assert.Equal(t, len(values.Exercises()), logs.FilterMessage("running exercise").Len())
		})
	}
}
