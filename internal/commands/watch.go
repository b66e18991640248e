package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okra-platform/arrgh/internal/watch"
)

const defaultDebounce = 200 * time.Millisecond

// WatchCommand re-runs a query whenever its data file or arrgh.json changes
type WatchCommand struct {
	query *QueryCommand
}

// NewWatchCommand creates a new watch command with default dependencies
func NewWatchCommand() *WatchCommand {
	return &WatchCommand{query: NewQueryCommand()}
}

// WithDependencies allows injecting custom dependencies for testing
func (wc *WatchCommand) WithDependencies(deps QueryDependencies) *WatchCommand {
	wc.query.WithDependencies(deps)
	return wc
}

// Execute runs the watch command until ctx is cancelled or an interrupt arrives
func (wc *WatchCommand) Execute(ctx context.Context, opts QueryOptions) error {
	logger := wc.query.deps.Logger

	plan, err := wc.query.resolve(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A failing first run is reported and watching continues, since the
	// usual fix is an edit to one of the watched files.
	if err := wc.query.run(plan); err != nil {
		logger.Error().Err(err).Msg("query failed")
	}

	// The callback runs on the goroutine that drives fw.Start, so it may add
	// files to fw directly.
	var fw *watch.FileWatcher
	dataPath := plan.dataPath
	fw, err = watch.NewFileWatcher(plan.debounce, func(changed []string) {
		logger.Info().Strs("changed", changed).Msg("re-running query")

		next, err := wc.query.resolve(opts)
		if err != nil {
			logger.Error().Err(err).Msg("failed to reload query")
			return
		}
		if next.dataPath != dataPath {
			if err := fw.AddFile(next.dataPath); err != nil {
				logger.Error().Err(err).Str("data", next.dataPath).Msg("failed to watch data file")
			} else {
				logger.Info().Str("data", next.dataPath).Msg("data file changed, now watching it")
				dataPath = next.dataPath
			}
		}
		if err := wc.query.run(next); err != nil {
			logger.Error().Err(err).Msg("query failed")
		}
	}, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.AddFile(plan.dataPath); err != nil {
		return err
	}
	if plan.configPath != "" {
		if err := fw.AddFile(plan.configPath); err != nil {
			return err
		}
	}

	logger.Info().Str("data", plan.dataPath).Dur("debounce", plan.debounce).Msg("watching for changes")

	if err := fw.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher error: %w", err)
	}
	return nil
}
