// Package log provides diagnostic logging for debuggee runs.
// Stdout and stderr belong to the harness, so the logger is a no-op unless
// --debug or --log asks for output. Each run ends with one Record that
// summarizes what the fixture did.
package log

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"debuggee/internal/config"
)

// Record summarizes a single run. It is written once, when the selected
// testcase returns; testcases that panic or never return leave only the
// start entry behind.
type Record struct {
	Testcase string
	Pid      int
	ChildPid int
	Duration time.Duration
	Error    string
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r Record) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("testcase", r.Testcase)
	enc.AddInt("pid", r.Pid)
	if r.ChildPid != 0 {
		enc.AddInt("child_pid", r.ChildPid)
	}
	enc.AddDuration("duration", r.Duration)
	if r.Error != "" {
		enc.AddString("error", r.Error)
	}
	return nil
}

// Logger wraps a zap logger together with the run record it is building.
type Logger struct {
	config *config.Config
	zap    *zap.Logger
	record Record
	start  time.Time
}

// NewLogger builds the logger for cfg. The --log file receives JSON lines,
// --debug alone writes human-readable lines to stderr.
func NewLogger(cfg *config.Config) (*Logger, error) {
	if !cfg.ShouldLog() {
		return newLogger(cfg, zap.NewNop()), nil
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.LogFile != "" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.OutputPaths = []string{cfg.LogFile}
		zapCfg.ErrorOutputPaths = []string{cfg.LogFile}
		if cfg.Debug {
			zapCfg.OutputPaths = append(zapCfg.OutputPaths, "stderr")
		}
		zapCfg.Sampling = nil
	}
	if cfg.Debug {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zapCfg.DisableStacktrace = true

	zl, err := zapCfg.Build()
	if err != nil {
		if cfg.LogFile != "" {
			return nil, fmt.Errorf("failed to create log file %s: %w", cfg.LogFile, err)
		}
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return newLogger(cfg, zl), nil
}

// NewLoggerWithCore builds a logger on top of an existing zap core.
func NewLoggerWithCore(cfg *config.Config, core zapcore.Core) *Logger {
	return newLogger(cfg, zap.New(core))
}

func newLogger(cfg *config.Config, zl *zap.Logger) *Logger {
	return &Logger{
		config: cfg,
		zap:    zl.With(zap.Int("pid", os.Getpid())),
		record: Record{
			Testcase: cfg.Testcase,
			Pid:      os.Getpid(),
		},
		start: time.Now(),
	}
}

// Zap returns the underlying zap logger for components that log directly.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

// Start marks the beginning of the testcase.
func (l *Logger) Start() {
	l.start = time.Now()
	l.zap.Debug("testcase starting",
		zap.String("testcase", l.record.Testcase),
		zap.Duration("sleep_for", l.config.SleepFor),
		zap.Duration("tick", l.config.Tick))
}

// SetChildPid records the pid of a spawned child.
func (l *Logger) SetChildPid(pid int) {
	l.record.ChildPid = pid
}

// Finish completes the run record and writes it.
func (l *Logger) Finish(err error) Record {
	l.record.Duration = time.Since(l.start)
	if err != nil {
		l.record.Error = err.Error()
		l.zap.Error("testcase failed", zap.Object("run", l.record))
		return l.record
	}
	l.zap.Info("testcase finished", zap.Object("run", l.record))
	return l.record
}

// Close flushes buffered entries. Sync errors on console outputs are
// ignored since stderr may not support fsync.
func (l *Logger) Close() error {
	err := l.zap.Sync()
	if err != nil && (l.config.LogFile == "" || l.config.Debug) {
		return nil
	}
	return err
}
