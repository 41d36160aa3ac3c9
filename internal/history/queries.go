package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RecordRun inserts run and its outcomes in one transaction and sets run.ID.
func (s *Store) RecordRun(run *Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (started_at, finished_at, planned, upgraded, failed, skipped)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
		run.Planned,
		run.Upgraded,
		run.Failed,
		run.Skipped,
	)
	if err != nil {
		return wrapQueryError(err, "failed to insert run")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO outcomes (run_id, position, name, kind, from_version, to_version, success, detail, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare outcome insert: %w", err)
	}
	defer stmt.Close()

	for i, o := range run.Outcomes {
		if _, err := stmt.Exec(id, i, o.Name, o.Kind, o.FromVersion, o.ToVersion, o.Success, o.Detail, o.Duration.Milliseconds()); err != nil {
			return fmt.Errorf("failed to insert outcome %s: %w", o.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	run.ID = id
	return nil
}

// ListRuns returns up to limit runs, newest first, with their outcomes.
// A limit of zero or less returns every run.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	query := `
		SELECT id, started_at, finished_at, planned, upgraded, failed, skipped
		FROM runs
		ORDER BY started_at DESC, id DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, wrapQueryError(err, "failed to list runs")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	for _, run := range runs {
		outcomes, err := s.outcomes(run.ID)
		if err != nil {
			return nil, err
		}
		run.Outcomes = outcomes
	}

	return runs, nil
}

// LastRun returns the most recent run, or nil when none was recorded.
func (s *Store) LastRun() (*Run, error) {
	runs, err := s.ListRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

// PackageFailures returns how many times item failed to upgrade across all
// recorded runs. A formula and a cask with the same name are counted apart.
func (s *Store) PackageFailures(item brew.Item) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM outcomes WHERE name = ? AND kind = ? AND success = 0`,
		item.Name, item.Kind.String()).Scan(&count)
	if err != nil {
		return 0, wrapQueryError(err, fmt.Sprintf("failed to count failures for %s %s", item.Kind, item.Name))
	}
	return count, nil
}

func (s *Store) outcomes(runID int64) ([]Outcome, error) {
	rows, err := s.db.Query(`
		SELECT name, kind, from_version, to_version, success, detail, duration_ms
		FROM outcomes
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, wrapQueryError(err, "failed to list outcomes")
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var o Outcome
		var from, to, detail sql.NullString
		var durationMs sql.NullInt64
		if err := rows.Scan(&o.Name, &o.Kind, &from, &to, &o.Success, &detail, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		o.FromVersion = from.String
		o.ToVersion = to.String
		o.Detail = detail.String
		o.Duration = time.Duration(durationMs.Int64) * time.Millisecond
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outcomes: %w", err)
	}
	return outcomes, nil
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var run Run
	var started, finished string
	if err := rows.Scan(&run.ID, &started, &finished, &run.Planned, &run.Upgraded, &run.Failed, &run.Skipped); err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	var err error
	if run.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return nil, fmt.Errorf("failed to parse started_at for run %d: %w", run.ID, err)
	}
	if run.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
		return nil, fmt.Errorf("failed to parse finished_at for run %d: %w", run.ID, err)
	}
	return &run, nil
}
