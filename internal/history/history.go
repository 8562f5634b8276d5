package history

import (
	"context"
	"time"

	"github.com/example/turno-scheduler/internal/db"
)

// Run is one end-to-end booking attempt as recorded in the local ledger.
// Timestamps are stored as RFC3339 strings in the run's local timezone.
type Run struct {
	ID           int64
	VisitDate    string
	StartedAt    string
	FinishedAt   *string
	Outcome      string
	ArtifactPath *string
	LastError    *string
}

// Phase is one recorded phase outcome within a run.
type Phase struct {
	ID        int64
	RunID     int64
	Phase     string
	Success   bool
	Detail    string
	CreatedAt string
}

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

func (r *Repo) StartRun(ctx context.Context, visitDate string) (int64, error) {
	id, err := r.db.ExecID(ctx, `
INSERT INTO runs(visit_date, started_at, outcome)
VALUES (?, ?, 'running')`,
		visitDate, now())
	return id, db.WrapNotFound(err)
}

func (r *Repo) FinishRun(ctx context.Context, runID int64, outcome string, artifactPath, lastErr *string) error {
	return r.db.Exec(ctx, `
UPDATE runs SET finished_at=?, outcome=?, artifact_path=?, last_error=? WHERE id=?`,
		now(), outcome, artifactPath, lastErr, runID)
}

func (r *Repo) RecordPhase(ctx context.Context, runID int64, phase string, success bool, detail string) error {
	return r.db.Exec(ctx, `
INSERT INTO run_phases(run_id, phase, success, detail, created_at)
VALUES (?, ?, ?, ?, ?)`,
		runID, phase, success, detail, now())
}

func (r *Repo) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, visit_date, started_at, finished_at, outcome, artifact_path, last_error
FROM runs
ORDER BY id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.VisitDate, &run.StartedAt, &run.FinishedAt, &run.Outcome, &run.ArtifactPath, &run.LastError); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *Repo) ListPhases(ctx context.Context, runID int64) ([]Phase, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, run_id, phase, success, detail, created_at
FROM run_phases
WHERE run_id=?
ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Phase
	for rows.Next() {
		var p Phase
		if err := rows.Scan(&p.ID, &p.RunID, &p.Phase, &p.Success, &p.Detail, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func now() string {
	return time.Now().Format(time.RFC3339)
}
