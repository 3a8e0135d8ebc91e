package scaffold

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"

	"adventctl/internal/assets"
	"adventctl/internal/remote"
	"adventctl/internal/telemetry"

	"github.com/charmbracelet/huh"
)

//go:embed solver.go.tmpl
var solverTemplate string

//go:embed registry.go.tmpl
var registryTemplate string

var (
	tmpl         = template.Must(template.New("solver").Parse(solverTemplate))
	registryTmpl = template.Must(template.New("registry").Parse(registryTemplate))
)

// DefaultSolutionsImport is the import path of the default SolutionsDir.
const DefaultSolutionsImport = "adventctl/internal/solutions"

// Loader is the asset cache used to prefetch a new day.
type Loader interface {
	Load(ctx context.Context, ref assets.Ref) ([]string, error)
}

// ConfirmFunc asks whether an existing file may be replaced.
type ConfirmFunc func(path string) (bool, error)

type Options struct {
	Year         int
	MaxDays      int
	SolutionsDir string

	// SolutionsImport is the Go import path of SolutionsDir.
	SolutionsImport string

	Assets  Loader
	Out     io.Writer
	Confirm ConfirmFunc
	Logger  *telemetry.Logger
	Now     func() time.Time
}

// Scaffolder creates solver stubs and warms the asset cache for new days.
type Scaffolder struct {
	opts Options
}

func New(opts Options) *Scaffolder {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 25
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.SolutionsImport == "" {
		opts.SolutionsImport = DefaultSolutionsImport
	}
	if opts.Confirm == nil {
		opts.Confirm = ConfirmOverwrite
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Scaffolder{opts: opts}
}

// ConfirmOverwrite prompts on the terminal.
func ConfirmOverwrite(path string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("%s exists. Overwrite?", path)).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirm overwrite: %w", err)
	}
	return ok, nil
}

func (s *Scaffolder) SolverPath(day int) string {
	return filepath.Join(s.opts.SolutionsDir, packageName(day), "solver.go")
}

// Create sets up one day, asking before replacing an existing solver.
func (s *Scaffolder) Create(ctx context.Context, day int) error {
	if day < 1 || day > s.opts.MaxDays {
		return fmt.Errorf("day must be a number between 1 and %d", s.opts.MaxDays)
	}
	return s.create(ctx, day, true)
}

// CreateAll sets up every released day without prompting. Unreleased days
// and existing solvers are skipped silently.
func (s *Scaffolder) CreateAll(ctx context.Context) error {
	for day := 1; day <= s.opts.MaxDays; day++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.create(ctx, day, false); err != nil {
			return fmt.Errorf("day %d: %w", day, err)
		}
	}
	return nil
}

func (s *Scaffolder) create(ctx context.Context, day int, interactive bool) error {
	now := s.opts.Now()
	if !Released(s.opts.Year, day, now) {
		if interactive {
			fmt.Fprintf(s.opts.Out, "Day %d is not released yet.\n", day)
			fmt.Fprintf(s.opts.Out, "Available in %s.\n", UntilRelease(s.opts.Year, day, now))
		}
		return nil
	}

	if err := s.writeSolver(day, interactive); err != nil {
		return err
	}
	if err := s.WriteRegistry(); err != nil {
		return err
	}
	return s.prefetch(ctx, day)
}

func (s *Scaffolder) RegistryPath() string {
	return filepath.Join(s.opts.SolutionsDir, "registry.go")
}

type registeredDay struct {
	Day     int
	Package string
}

// SolverDays lists the days that have a solver.go under SolutionsDir.
func (s *Scaffolder) SolverDays() ([]int, error) {
	entries, err := os.ReadDir(s.opts.SolutionsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var days []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		day, ok := dayFromPackage(e.Name())
		if !ok || day > s.opts.MaxDays || packageName(day) != e.Name() {
			continue
		}
		if _, err := os.Stat(s.SolverPath(day)); err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Ints(days)
	return days, nil
}

// WriteRegistry regenerates registry.go so every solver on disk is
// registered. The file is only rewritten when its content changes.
func (s *Scaffolder) WriteRegistry() error {
	days, err := s.SolverDays()
	if err != nil {
		return fmt.Errorf("scan solutions: %w", err)
	}
	reg := make([]registeredDay, 0, len(days))
	for _, day := range days {
		reg = append(reg, registeredDay{Day: day, Package: packageName(day)})
	}

	var buf bytes.Buffer
	if err := registryTmpl.Execute(&buf, map[string]any{
		"Import": s.opts.SolutionsImport,
		"Days":   reg,
	}); err != nil {
		return fmt.Errorf("render registry template: %w", err)
	}

	path := s.RegistryPath()
	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, buf.Bytes()) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	s.opts.Logger.Info("scaffold.registry", map[string]any{"path": path, "days": len(reg)})
	fmt.Fprintf(s.opts.Out, "Updated %s, rebuild adventctl to pick up new days\n", path)
	return nil
}

func (s *Scaffolder) writeSolver(day int, interactive bool) error {
	path := s.SolverPath(day)
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if !interactive {
			return nil
		}
		ok, err := s.opts.Confirm(path)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"Package": packageName(day),
		"Year":    s.opts.Year,
		"Day":     day,
	}); err != nil {
		return fmt.Errorf("render solver template: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	s.opts.Logger.Info("scaffold.created", map[string]any{"day": day, "path": path})
	fmt.Fprintf(s.opts.Out, "Created %s\n", path)
	return nil
}

// prefetch warms the cache. Failures are reported and skipped; only a
// missing credential is returned since every later fetch would fail too.
func (s *Scaffolder) prefetch(ctx context.Context, day int) error {
	if s.opts.Assets == nil {
		return nil
	}
	refs := []assets.Ref{
		assets.StatementOf(day),
		assets.Fixture(day, 1),
		assets.Answer(day, 1),
		assets.Fixture(day, 2),
		assets.Answer(day, 2),
		assets.Input(day),
	}
	for _, ref := range refs {
		if _, err := s.opts.Assets.Load(ctx, ref); err != nil {
			if errors.Is(err, remote.ErrAuthMissing) {
				return err
			}
			s.opts.Logger.Warn("scaffold.prefetch_failed", map[string]any{"asset": ref.String(), "error": err.Error()})
			fmt.Fprintf(s.opts.Out, "Could not fetch %s: %v\n", ref, err)
		}
	}
	return nil
}

func packageName(day int) string {
	return fmt.Sprintf("day%02d", day)
}

func dayFromPackage(name string) (int, bool) {
	if len(name) != 5 || !strings.HasPrefix(name, "day") {
		return 0, false
	}
	day, err := strconv.Atoi(name[3:])
	if err != nil || day < 1 {
		return 0, false
	}
	return day, true
}
