package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"adventctl/internal/telemetry"
)

// ErrEmptyAsset is returned when the service has nothing for a mandatory asset.
var ErrEmptyAsset = errors.New("service returned no content")

// AssetUnavailable means the asset is neither cached nor fetchable.
type AssetUnavailable struct {
	Ref  Ref
	Path string
	Err  error
}

func (e *AssetUnavailable) Error() string {
	return fmt.Sprintf("%s unavailable (%s): %v", e.Ref, e.Path, e.Err)
}

func (e *AssetUnavailable) Unwrap() error { return e.Err }

// FSCache serves assets from disk and fetches the missing ones once.
// Cached files are never revalidated against the service.
type FSCache struct {
	layout  Layout
	fetcher Fetcher
	logger  *telemetry.Logger
}

func NewCache(root string, fetcher Fetcher, logger *telemetry.Logger) *FSCache {
	return &FSCache{layout: Layout{Root: root}, fetcher: fetcher, logger: logger}
}

func (c *FSCache) Layout() Layout { return c.layout }

func (c *FSCache) Path(ref Ref) string { return c.layout.Path(ref) }

// Load returns the asset split into lines.
func (c *FSCache) Load(ctx context.Context, ref Ref) ([]string, error) {
	text, err := c.Text(ctx, ref)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

// Text returns the asset verbatim. Only a missing file triggers a fetch;
// any other read error is returned as is. Empty fetch results are returned
// without being written so a later run can pick up newly published content.
func (c *FSCache) Text(ctx context.Context, ref Ref) (string, error) {
	path := c.layout.Path(ref)
	b, err := os.ReadFile(path)
	if err == nil {
		c.logger.Debug("assets.hit", map[string]any{"asset": ref.String(), "path": path})
		return string(b), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	c.logger.Info("assets.fetch", map[string]any{"asset": ref.String(), "path": path})
	text, err := c.fetch(ctx, ref)
	if err != nil {
		return "", &AssetUnavailable{Ref: ref, Path: path, Err: err}
	}
	if text == "" {
		if ref.Kind == RawInput {
			return "", &AssetUnavailable{Ref: ref, Path: path, Err: ErrEmptyAsset}
		}
		return "", nil
	}
	if err := writeAsset(path, text); err != nil {
		return "", err
	}
	return text, nil
}

func (c *FSCache) fetch(ctx context.Context, ref Ref) (string, error) {
	if c.fetcher == nil {
		return "", errors.New("no fetcher configured")
	}
	switch ref.Kind {
	case RawInput:
		return c.fetcher.FetchInput(ctx, ref.Day)
	case TestFixture:
		return c.fetcher.FetchTestFixture(ctx, ref.Day)
	case ExpectedTestAnswer:
		return c.fetcher.FetchExpectedAnswer(ctx, ref.Day, ref.Part)
	case Statement:
		return c.fetcher.FetchStatement(ctx, ref.Day)
	default:
		return "", fmt.Errorf("unknown asset kind %s", ref.Kind)
	}
}

func writeAsset(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("persist %s: %w", path, err)
	}
	return nil
}

// SplitLines splits text on newlines, dropping the empty element a trailing
// newline would produce.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
