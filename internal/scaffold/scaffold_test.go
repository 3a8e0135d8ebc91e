package scaffold

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"adventctl/internal/assets"
	"adventctl/internal/remote"

	"github.com/google/go-cmp/cmp"
)

type fakeLoader struct {
	loads []assets.Ref
	err   error
}

func (f *fakeLoader) Load(_ context.Context, ref assets.Ref) ([]string, error) {
	f.loads = append(f.loads, ref)
	return nil, f.err
}

func newTestScaffolder(t *testing.T, now time.Time, loader Loader, confirm ConfirmFunc) (*Scaffolder, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	if confirm == nil {
		confirm = func(string) (bool, error) {
			t.Fatalf("unexpected overwrite prompt")
			return false, nil
		}
	}
	return New(Options{
		Year:         2025,
		MaxDays:      12,
		SolutionsDir: t.TempDir(),
		Assets:       loader,
		Out:          &out,
		Confirm:      confirm,
		Now:          func() time.Time { return now },
	}), &out
}

func TestReleaseTimeIsMidnightEastern(t *testing.T) {
	got := ReleaseTime(2025, 3).UTC()
	want := time.Date(2025, time.December, 3, 5, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if Released(2025, 3, want.Add(-time.Second)) {
		t.Fatalf("day 3 should not be released a second early")
	}
	if !Released(2025, 3, want) {
		t.Fatalf("day 3 should be released at midnight")
	}
}

func TestUntilRelease(t *testing.T) {
	release := ReleaseTime(2025, 5)
	if got := UntilRelease(2025, 5, release.Add(-3*time.Hour)); got != "3 hours" {
		t.Fatalf("unexpected wait %q", got)
	}
	if got := UntilRelease(2025, 5, release); got != "now" {
		t.Fatalf("unexpected wait %q", got)
	}
}

func TestCreateWritesSolverAndPrefetches(t *testing.T) {
	loader := &fakeLoader{}
	s, out := newTestScaffolder(t, ReleaseTime(2025, 2).Add(time.Minute), loader, nil)

	if err := s.Create(context.Background(), 2); err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := os.ReadFile(s.SolverPath(2))
	if err != nil {
		t.Fatalf("expected solver file: %v", err)
	}
	src := string(b)
	if !strings.HasPrefix(src, "package day02\n") || !strings.Contains(src, "2025 day 2") {
		t.Fatalf("unexpected template output:\n%s", src)
	}
	if filepath.Base(filepath.Dir(s.SolverPath(2))) != "day02" {
		t.Fatalf("unexpected solver path %s", s.SolverPath(2))
	}
	if len(loader.loads) != 6 || loader.loads[len(loader.loads)-1] != assets.Input(2) {
		t.Fatalf("unexpected prefetch %v", loader.loads)
	}
	if !strings.Contains(out.String(), "Created ") {
		t.Fatalf("expected creation notice, got %q", out.String())
	}
}

func TestCreateUnreleasedDayPrintsWait(t *testing.T) {
	loader := &fakeLoader{}
	s, out := newTestScaffolder(t, ReleaseTime(2025, 4).Add(-2*time.Hour), loader, nil)

	if err := s.Create(context.Background(), 4); err != nil {
		t.Fatalf("create: %v", err)
	}
	want := "Day 4 is not released yet.\nAvailable in 2 hours.\n"
	if out.String() != want {
		t.Fatalf("unexpected output %q", out.String())
	}
	if _, err := os.Stat(s.SolverPath(4)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("no solver should be written, stat err=%v", err)
	}
	if len(loader.loads) != 0 {
		t.Fatalf("no prefetch expected, got %v", loader.loads)
	}
}

func TestCreateAsksBeforeOverwriting(t *testing.T) {
	asked := 0
	decline := func(string) (bool, error) {
		asked++
		return false, nil
	}
	s, _ := newTestScaffolder(t, ReleaseTime(2025, 1), &fakeLoader{}, decline)
	path := s.SolverPath(1)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("package day01 // mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Create(context.Background(), 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	if asked != 1 {
		t.Fatalf("expected one prompt, got %d", asked)
	}
	b, _ := os.ReadFile(path)
	if string(b) != "package day01 // mine\n" {
		t.Fatalf("declined overwrite must keep the file, got %q", string(b))
	}
}

func TestCreateAllSkipsExistingAndUnreleased(t *testing.T) {
	loader := &fakeLoader{}
	s, out := newTestScaffolder(t, ReleaseTime(2025, 3).Add(time.Hour), loader, nil)
	existing := s.SolverPath(2)
	if err := os.MkdirAll(filepath.Dir(existing), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(existing, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.CreateAll(context.Background()); err != nil {
		t.Fatalf("create all: %v", err)
	}
	for _, day := range []int{1, 3} {
		if _, err := os.Stat(s.SolverPath(day)); err != nil {
			t.Fatalf("day %d should be created: %v", day, err)
		}
	}
	if b, _ := os.ReadFile(existing); string(b) != "keep" {
		t.Fatalf("existing solver was overwritten")
	}
	if _, err := os.Stat(s.SolverPath(4)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("unreleased day 4 should be skipped")
	}
	if strings.Contains(out.String(), "not released") {
		t.Fatalf("all-days mode should be quiet about unreleased days: %q", out.String())
	}
	if len(loader.loads) != 18 {
		t.Fatalf("expected prefetch for three days, got %d loads", len(loader.loads))
	}
}

func TestPrefetchFailuresAreReported(t *testing.T) {
	loader := &fakeLoader{err: &assets.AssetUnavailable{Ref: assets.Input(1), Err: errors.New("HTTP 404")}}
	s, out := newTestScaffolder(t, ReleaseTime(2025, 1), loader, nil)
	if err := s.Create(context.Background(), 1); err != nil {
		t.Fatalf("prefetch failure should not fail create: %v", err)
	}
	if !strings.Contains(out.String(), "Could not fetch") {
		t.Fatalf("expected failure notice, got %q", out.String())
	}

	auth := &fakeLoader{err: remote.ErrAuthMissing}
	s, _ = newTestScaffolder(t, ReleaseTime(2025, 1), auth, nil)
	if err := s.Create(context.Background(), 1); !errors.Is(err, remote.ErrAuthMissing) {
		t.Fatalf("expected ErrAuthMissing, got %v", err)
	}
	if len(auth.loads) != 1 {
		t.Fatalf("expected to stop after the first load, got %v", auth.loads)
	}
}

func TestCreateRejectsOutOfRangeDay(t *testing.T) {
	s, _ := newTestScaffolder(t, time.Now(), nil, nil)
	if err := s.Create(context.Background(), 13); err == nil {
		t.Fatalf("expected error for day 13")
	}
}

func touchSolver(t *testing.T, dir, pkg string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, pkg), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, pkg, "solver.go"), []byte("package "+pkg+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCreateRegistersNewDay(t *testing.T) {
	s, out := newTestScaffolder(t, ReleaseTime(2025, 3), &fakeLoader{}, nil)
	dir := s.opts.SolutionsDir
	touchSolver(t, dir, "day03")
	touchSolver(t, dir, "day2")
	if err := os.MkdirAll(filepath.Join(dir, "day07"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Create(context.Background(), 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := os.ReadFile(s.RegistryPath())
	if err != nil {
		t.Fatalf("expected registry: %v", err)
	}
	want := `// Code generated by adventctl create. DO NOT EDIT.

// Package solutions wires each day's solver into the runner.
package solutions

import (
	"adventctl/internal/runner"
	"adventctl/internal/solutions/day01"
	"adventctl/internal/solutions/day03"
)

// Registry returns every solver found under this directory when it was
// last generated.
func Registry() *runner.Registry {
	r := runner.NewRegistry()
	r.Register(1, day01.Solver)
	r.Register(3, day03.Solver)
	return r
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("unexpected registry (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "Updated "+s.RegistryPath()) {
		t.Fatalf("expected registry notice, got %q", out.String())
	}

	out.Reset()
	if err := s.WriteRegistry(); err != nil {
		t.Fatalf("write registry: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unchanged registry should not be rewritten, got %q", out.String())
	}
}

func TestCheckedInRegistryIsGenerated(t *testing.T) {
	s, _ := newTestScaffolder(t, time.Now(), nil, nil)
	for day := 1; day <= 6; day++ {
		touchSolver(t, s.opts.SolutionsDir, packageName(day))
	}
	if err := s.WriteRegistry(); err != nil {
		t.Fatalf("write registry: %v", err)
	}
	got, err := os.ReadFile(s.RegistryPath())
	if err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile(filepath.Join("..", "solutions", "registry.go"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("internal/solutions/registry.go is stale (-want +got):\n%s", diff)
	}
}
