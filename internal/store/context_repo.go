package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

// ContextRepo persists the JSON stage contexts produced at each pipeline
// boundary. Re-running a stage appends a new version; earlier documents
// stay untouched for audit.
type ContextRepo struct{}

// SaveTx stores one stage context as the next version within an existing
// transaction.
func (r *ContextRepo) SaveTx(ctx context.Context, tx *sql.Tx, assessmentID, stage string, doc any, now int64) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s context: %w", stage, err)
	}

	const q = `INSERT INTO stage_contexts (assessment_id, stage, version, context_json, created_at)
VALUES (?, ?, (SELECT COALESCE(MAX(version), 0) + 1 FROM stage_contexts WHERE assessment_id = ? AND stage = ?), ?, ?)`
	if _, err := tx.ExecContext(ctx, q, assessmentID, stage, assessmentID, stage, string(data), now); err != nil {
		return fmt.Errorf("save %s context: %w", stage, err)
	}
	return nil
}

// Load reads the latest version of one stage context into out.
func (r *ContextRepo) Load(ctx context.Context, db *sql.DB, assessmentID, stage string, out any) error {
	const q = `SELECT context_json FROM stage_contexts WHERE assessment_id = ? AND stage = ?
ORDER BY version DESC LIMIT 1`

	var raw string
	err := db.QueryRowContext(ctx, q, assessmentID, stage).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.NewEngineError(domain.ErrStageOutOfOrder.Code,
				fmt.Sprintf("no %s context for assessment %s", stage, assessmentID))
		}
		return fmt.Errorf("load %s context: %w", stage, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode %s context: %w", stage, err)
	}
	return nil
}

// LatestVersion reports the highest stored version for a stage, 0 when
// none exists.
func (r *ContextRepo) LatestVersion(ctx context.Context, db *sql.DB, assessmentID, stage string) (int, error) {
	const q = `SELECT COALESCE(MAX(version), 0) FROM stage_contexts WHERE assessment_id = ? AND stage = ?`

	var v int
	if err := db.QueryRowContext(ctx, q, assessmentID, stage).Scan(&v); err != nil {
		return 0, fmt.Errorf("latest %s version: %w", stage, err)
	}
	return v, nil
}

// Stages lists the stages recorded for an assessment, in first-write order.
func (r *ContextRepo) Stages(ctx context.Context, db *sql.DB, assessmentID string) ([]string, error) {
	const q = `SELECT stage FROM stage_contexts WHERE assessment_id = ? GROUP BY stage ORDER BY MIN(id)`

	rows, err := db.QueryContext(ctx, q, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
