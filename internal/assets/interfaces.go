package assets

import "context"

// Fetcher retrieves asset text from the puzzle service.
type Fetcher interface {
	FetchInput(ctx context.Context, day int) (string, error)
	FetchTestFixture(ctx context.Context, day int) (string, error)
	FetchExpectedAnswer(ctx context.Context, day, part int) (string, error)
	FetchStatement(ctx context.Context, day int) (string, error)
}

type Store interface {
	Load(ctx context.Context, ref Ref) ([]string, error)
	Text(ctx context.Context, ref Ref) (string, error)
	Path(ref Ref) string
}

var _ Store = (*FSCache)(nil)
