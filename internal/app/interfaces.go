package app

import (
	"context"

	"adventctl/internal/runner"
)

// Service is the surface the CLI drives.
type Service interface {
	Run(ctx context.Context, day int, solvers runner.Lookup) error
	Create(ctx context.Context, day int) error
	Show(ctx context.Context, day int) error
	History(ctx context.Context, day int) error
	Close()
}

var _ Service = (*App)(nil)
