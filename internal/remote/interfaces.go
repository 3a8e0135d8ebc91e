package remote

import (
	"context"

	"golang.org/x/net/html"
)

type Service interface {
	FetchInput(ctx context.Context, day int) (string, error)
	FetchPuzzlePage(ctx context.Context, day int) (*html.Node, error)
	FetchTestFixture(ctx context.Context, day int) (string, error)
	FetchExpectedAnswer(ctx context.Context, day, part int) (string, error)
	FetchStatement(ctx context.Context, day int) (string, error)
	CurrentSolvedLevel(ctx context.Context, day int) (int, error)
	Submit(ctx context.Context, day, part int, answer string) (Outcome, error)
	Forget(day int)
}

var _ Service = (*Client)(nil)
