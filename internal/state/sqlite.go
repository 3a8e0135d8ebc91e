package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			year INTEGER NOT NULL,
			day INTEGER NOT NULL,
			submit INTEGER NOT NULL DEFAULT 0,
			start_ts TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS part_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL,
			part INTEGER NOT NULL,
			stage TEXT NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT '',
			recorded_ts TEXT NOT NULL,
			FOREIGN KEY(run_id) REFERENCES runs(id)
		);`,
		`CREATE TABLE IF NOT EXISTS submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL DEFAULT 0,
			year INTEGER NOT NULL,
			day INTEGER NOT NULL,
			part INTEGER NOT NULL,
			answer TEXT NOT NULL,
			verdict TEXT NOT NULL,
			cooldown TEXT NOT NULL DEFAULT '',
			submitted_ts TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS submissions_by_day ON submissions(year, day, part);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) StartRun(ctx context.Context, run Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(session_id, year, day, submit, start_ts) VALUES(?,?,?,?,?)`,
		strings.TrimSpace(run.SessionID),
		run.Year,
		run.Day,
		ifThen(run.Submit, 1, 0),
		stamp(run.StartTS),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) RecordPartResult(ctx context.Context, res PartResult) error {
	if res.RunID == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO part_results(run_id, part, stage, answer, detail, recorded_ts) VALUES(?,?,?,?,?,?)`,
		res.RunID,
		res.Part,
		res.Stage,
		res.Answer,
		res.Detail,
		stamp(res.RecordedTS),
	)
	return err
}

func (s *SQLiteStore) RecordSubmission(ctx context.Context, sub Submission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions(run_id, year, day, part, answer, verdict, cooldown, submitted_ts)
		VALUES(?,?,?,?,?,?,?,?)
	`,
		sub.RunID,
		sub.Year,
		sub.Day,
		sub.Part,
		sub.Answer,
		sub.Verdict,
		sub.Cooldown,
		stamp(sub.SubmittedTS),
	)
	return err
}

// ListSubmissions returns submissions for a year, newest first. A zero day
// lists every day.
func (s *SQLiteStore) ListSubmissions(ctx context.Context, year, day int) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, year, day, part, answer, verdict, cooldown, submitted_ts
		FROM submissions
		WHERE year = ? AND (? = 0 OR day = ?)
		ORDER BY submitted_ts DESC, id DESC
	`, year, day, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		var (
			sub Submission
			ts  string
		)
		if err := rows.Scan(&sub.RunID, &sub.Year, &sub.Day, &sub.Part, &sub.Answer, &sub.Verdict, &sub.Cooldown, &ts); err != nil {
			return nil, err
		}
		sub.SubmittedTS = parseStamp(ts)
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) ListDayStats(ctx context.Context, year int) ([]DayStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			r.day,
			COUNT(*) AS runs,
			MAX(r.start_ts) AS last_run,
			(SELECT COUNT(*) FROM submissions s WHERE s.year = r.year AND s.day = r.day) AS submissions,
			(SELECT COUNT(DISTINCT s.part) FROM submissions s
				WHERE s.year = r.year AND s.day = r.day AND s.verdict IN ('correct', 'already_solved')) AS stars
		FROM runs r
		WHERE r.year = ?
		GROUP BY r.day
		ORDER BY r.day
	`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DayStats
	for rows.Next() {
		var (
			st   DayStats
			last string
		)
		if err := rows.Scan(&st.Day, &st.Runs, &last, &st.Submissions, &st.Stars); err != nil {
			return nil, err
		}
		st.LastRunTS = parseStamp(last)
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) GetSummary(ctx context.Context, year int) (Summary, error) {
	var out Summary
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM runs WHERE year = ?) AS runs,
			(SELECT COUNT(*) FROM part_results p JOIN runs r ON r.id = p.run_id
				WHERE r.year = ? AND p.stage = 'test_passed') AS parts_passed,
			(SELECT COUNT(*) FROM submissions WHERE year = ?) AS submissions,
			(SELECT COUNT(*) FROM submissions WHERE year = ? AND verdict = 'correct') AS correct
	`, year, year, year, year)
	if err := row.Scan(&out.Runs, &out.PartsPassed, &out.Submissions, &out.Correct); err != nil {
		return Summary{}, err
	}
	return out, nil
}

func (s *SQLiteStore) GetLastRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, year, day, submit, start_ts
		FROM runs
		ORDER BY id DESC
		LIMIT 1
	`)
	var (
		run    Run
		submit int
		ts     string
	)
	if err := row.Scan(&run.ID, &run.SessionID, &run.Year, &run.Day, &submit, &ts); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	run.Submit = submit == 1
	run.StartTS = parseStamp(ts)
	return &run, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func stamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func parseStamp(raw string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func ifThen(cond bool, yes, no int) int {
	if cond {
		return yes
	}
	return no
}

var _ Store = (*SQLiteStore)(nil)
