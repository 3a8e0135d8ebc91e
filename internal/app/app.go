package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"adventctl/internal/assets"
	"adventctl/internal/remote"
	"adventctl/internal/runner"
	"adventctl/internal/scaffold"
	"adventctl/internal/state"
	"adventctl/internal/telemetry"
	"adventctl/internal/ui"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// ErrStatementUnavailable means the puzzle page had no readable articles.
var ErrStatementUnavailable = errors.New("puzzle statement not available")

type App struct {
	cfg Config
	out io.Writer

	logger    *telemetry.Logger
	store     *state.SQLiteStore
	client    *remote.Client
	cache     *assets.FSCache
	runner    *runner.Runner
	scaffold  *scaffold.Scaffolder
	theme     ui.Theme
	statement *ui.StatementRenderer

	sessionID string
}

type Options struct {
	Out        io.Writer
	HTTPClient *http.Client
	Confirm    scaffold.ConfirmFunc
	Now        func() time.Time
}

func New(cfg Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	logger, err := telemetry.NewLogger(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "history.db"))
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		_ = store.Close()
		_ = logger.Close()
		return nil, err
	}

	sessionID := uuid.NewString()
	client := remote.New(remote.Options{
		BaseURL:    cfg.BaseURL,
		Year:       cfg.Year,
		Token:      cfg.Token,
		HTTPClient: opts.HTTPClient,
		Limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		Logger:     logger,
	})
	cache := assets.NewCache(cfg.Root, client, logger)
	theme := ui.ThemeForVariant(cfg.UI.StyleVariant)

	a := &App{
		cfg:       cfg,
		out:       opts.Out,
		logger:    logger,
		store:     store,
		client:    client,
		cache:     cache,
		theme:     theme,
		statement: ui.NewStatementRenderer(cfg.UI.MarkdownStyle, cfg.UI.WordWrap),
		sessionID: sessionID,
	}
	a.runner = runner.New(runner.Options{
		Year:      cfg.Year,
		MaxDays:   cfg.MaxDays,
		Submit:    cfg.Submit,
		SessionID: sessionID,
		Remote:    client,
		Assets:    cache,
		Reporter:  ui.NewConsole(opts.Out, theme),
		Recorder:  store,
		Logger:    logger,
		Now:       opts.Now,
		Missing:   a.missingDetail,
	})
	a.scaffold = scaffold.New(scaffold.Options{
		Year:         cfg.Year,
		MaxDays:      cfg.MaxDays,
		SolutionsDir: cfg.SolutionsDir,
		Assets:       cache,
		Out:          opts.Out,
		Confirm:      opts.Confirm,
		Logger:       logger,
		Now:          opts.Now,
	})
	return a, nil
}

func (a *App) Config() Config { return a.cfg }

func (a *App) SessionID() string { return a.sessionID }

// Run solves one day, or every day when day is zero.
func (a *App) Run(ctx context.Context, day int, solvers runner.Lookup) error {
	a.logger.Info("app.run", map[string]any{"session": a.sessionID, "year": a.cfg.Year, "day": day})
	if day == 0 {
		return a.explainAuth(a.runner.RunAll(ctx, solvers))
	}
	if err := a.checkDay(day); err != nil {
		return err
	}
	solver, ok := solvers.Lookup(day)
	if !ok {
		_, _ = fmt.Fprintln(a.out, a.missingDetail(day))
		return nil
	}
	return a.explainAuth(a.runner.Run(ctx, day, solver))
}

// explainAuth points at the offline mode when the submission pre-flight is
// what needed the credential.
func (a *App) explainAuth(err error) error {
	if errors.Is(err, remote.ErrAuthMissing) && a.cfg.Submit {
		return fmt.Errorf("%w: set AOC_TOKEN, or pass --no-submit to check examples offline", err)
	}
	return err
}

// missingDetail tells a day that was never created apart from one whose
// solver exists on disk but is not compiled into this binary.
func (a *App) missingDetail(day int) string {
	path := a.scaffold.SolverPath(day)
	if _, err := os.Stat(path); err == nil {
		return fmt.Sprintf("Day %d has a solver at %s but it is not registered in this build. Run \"adventctl create %d\" to update the registry, then rebuild.", day, path, day)
	}
	return fmt.Sprintf("Day %d has not been created yet.", day)
}

// Create scaffolds one day, or every released day when day is zero.
func (a *App) Create(ctx context.Context, day int) error {
	if day == 0 {
		return a.scaffold.CreateAll(ctx)
	}
	if err := a.checkDay(day); err != nil {
		return err
	}
	return a.scaffold.Create(ctx, day)
}

// Show prints the cached puzzle statement, fetching it on first use.
func (a *App) Show(ctx context.Context, day int) error {
	if err := a.checkDay(day); err != nil {
		return err
	}
	md, err := a.cache.Text(ctx, assets.StatementOf(day))
	if err != nil {
		return err
	}
	if md == "" {
		return fmt.Errorf("day %d: %w", day, ErrStatementUnavailable)
	}
	_, err = io.WriteString(a.out, a.statement.Render(md))
	return err
}

// History prints recorded runs and submissions for the configured year.
func (a *App) History(ctx context.Context, day int) error {
	if day != 0 {
		if err := a.checkDay(day); err != nil {
			return err
		}
	}
	summary, err := a.store.GetSummary(ctx, a.cfg.Year)
	if err != nil {
		return fmt.Errorf("load summary: %w", err)
	}
	days, err := a.store.ListDayStats(ctx, a.cfg.Year)
	if err != nil {
		return fmt.Errorf("load day stats: %w", err)
	}
	subs, err := a.store.ListSubmissions(ctx, a.cfg.Year, day)
	if err != nil {
		return fmt.Errorf("load submissions: %w", err)
	}
	_, err = io.WriteString(a.out, a.theme.RenderHistory(ui.HistoryView{
		Year:        a.cfg.Year,
		Day:         day,
		Summary:     summary,
		Days:        days,
		Submissions: subs,
	}))
	return err
}

func (a *App) Close() {
	_ = a.store.Close()
	_ = a.logger.Close()
}

func (a *App) checkDay(day int) error {
	if day < 1 || day > a.cfg.MaxDays {
		return fmt.Errorf("day must be a number between 1 and %d", a.cfg.MaxDays)
	}
	return nil
}
