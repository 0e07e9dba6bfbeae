// Package cmd implements the command-line interface of debuggee.
// It binds flags into a config, builds the logger, spawner and runner, and
// dispatches exactly one testcase per invocation.
package cmd

import (
	"context"

	"debuggee/internal/config"
	"debuggee/internal/errors"
	"debuggee/internal/log"
	"debuggee/internal/process"
	"debuggee/internal/testcase"
)

func executeTestcase(ctx context.Context, cfg *config.Config) error {
	logger, err := log.NewLogger(cfg)
	if err != nil {
		return errors.NewConfigErrorWithPath(cfg.LogFile, "cannot open log", err)
	}
	defer logger.Close()

	spawner := process.NewSpawner(logger.Zap())
	spawn := func(ctx context.Context, args ...string) (testcase.Child, error) {
		child, err := spawner.Spawn(ctx, args...)
		if err != nil {
			return nil, err
		}
		return child, nil
	}

	runner := testcase.NewRunner(cfg, logger, spawn)

	logger.Start()
	err = runner.Run(ctx, cfg.Testcase)
	logger.Finish(err)
	return err
}
