// Package commands contains the CLI commands for the application
package commands

import (
	"context"
)

type Flags struct {
	LogLevel string
}

type Controller struct {
	Flags *Flags
}

// Query runs a query once and prints the result
func (c *Controller) Query(ctx context.Context, opts QueryOptions) error {
	return NewQueryCommand().Execute(ctx, opts)
}

// Watch runs a query and re-runs it whenever its data or config changes
func (c *Controller) Watch(ctx context.Context, opts QueryOptions) error {
	return NewWatchCommand().Execute(ctx, opts)
}

// Init writes a starter arrgh.json in the current directory
func (c *Controller) Init(ctx context.Context) error {
	cmd := NewInitCommand()
	return cmd.Run(ctx)
}
