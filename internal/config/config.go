// Package config holds the runtime options of a debuggee invocation.
// All options come from the command line; nothing is read from files or
// the environment.
package config

import (
	"path/filepath"
	"time"

	"debuggee/internal/errors"
)

// ListFormat represents the supported output formats for the testcase catalog.
type ListFormat string

// Supported catalog formats.
const (
	ListFormatText ListFormat = "text"
	ListFormatJSON ListFormat = "json"
	ListFormatYAML ListFormat = "yaml"
)

// Defaults for the blocking testcases.
const (
	DefaultSleepFor = 10 * time.Second
	DefaultTick     = time.Second
)

// Config holds all runtime options for a single run.
type Config struct {
	Testcase   string
	SleepFor   time.Duration
	Tick       time.Duration
	Debug      bool
	LogFile    string
	List       bool
	ListFormat ListFormat
}

// Validate checks option values and fills in defaults. A missing testcase is
// not a configuration error; the dispatcher reports it as a usage error.
func (c *Config) Validate() error {
	if err := c.validateDurations(); err != nil {
		return err
	}

	if err := c.validateLogFile(); err != nil {
		return err
	}

	if err := c.validateListFormat(); err != nil {
		return err
	}

	c.normalizeConfig()
	return nil
}

func (c *Config) validateDurations() error {
	if c.SleepFor < 0 {
		return errors.NewConfigError("sleep duration must not be negative", nil)
	}
	if c.Tick < 0 {
		return errors.NewConfigError("tick interval must not be negative", nil)
	}
	return nil
}

func (c *Config) validateLogFile() error {
	if c.LogFile == "" {
		return nil
	}

	absLogFile, err := filepath.Abs(c.LogFile)
	if err != nil {
		return errors.NewConfigErrorWithPath(c.LogFile, "invalid log file path", err)
	}
	c.LogFile = absLogFile
	return nil
}

func (c *Config) validateListFormat() error {
	switch c.ListFormat {
	case "", ListFormatText, ListFormatJSON, ListFormatYAML:
		return nil
	default:
		return errors.NewConfigError("list format must be 'text', 'json' or 'yaml'", nil)
	}
}

// normalizeConfig fills in defaults. A zero duration selects the default
// rather than an instant sleep or a busy loop, so "--tick 0" cannot turn
// inf_loop into a spin that floods the harness.
func (c *Config) normalizeConfig() {
	if c.SleepFor == 0 {
		c.SleepFor = DefaultSleepFor
	}
	if c.Tick == 0 {
		c.Tick = DefaultTick
	}
	if c.ListFormat == "" {
		c.ListFormat = ListFormatText
	}
}

// ShouldLog reports whether diagnostics go anywhere at all. Without --debug
// or --log the fixture keeps stdout and stderr for the harness alone.
func (c *Config) ShouldLog() bool {
	return c.Debug || c.LogFile != ""
}

// ChildArgs returns the arguments a spawned child receives: the sleep
// duration followed by the sleep testcase. Flags go first because the
// command line stops parsing flags at the testcase.
func (c *Config) ChildArgs() []string {
	return []string{"--sleep-for", c.SleepFor.String(), "sleep"}
}
