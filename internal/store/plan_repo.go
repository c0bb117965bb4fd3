package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

// PlanRepo persists finalized intervention plans. Versions per client are
// monotonic; regeneration never overwrites an earlier plan.
type PlanRepo struct{}

// NextVersionTx returns max(version)+1 for the client, inside the same
// transaction that will insert the plan.
func (r *PlanRepo) NextVersionTx(ctx context.Context, tx *sql.Tx, clientID string) (int, error) {
	const q = `SELECT COALESCE(MAX(version), 0) FROM meal_plans WHERE client_id = ?`

	var max int
	if err := tx.QueryRowContext(ctx, q, clientID).Scan(&max); err != nil {
		return 0, fmt.Errorf("next plan version: %w", err)
	}
	return max + 1, nil
}

// SaveTx inserts a finalized plan within an existing transaction.
func (r *PlanRepo) SaveTx(ctx context.Context, tx *sql.Tx, planID, clientID string, plan domain.InterventionContext, now int64) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	const q = `INSERT INTO meal_plans (plan_id, assessment_id, client_id, version, plan_json, created_at)
VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, planID, plan.AssessmentID, clientID, plan.PlanVersion, string(data), now); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// Latest returns the client's highest-version plan.
func (r *PlanRepo) Latest(ctx context.Context, db *sql.DB, clientID string) (*domain.InterventionContext, error) {
	const q = `SELECT plan_json FROM meal_plans WHERE client_id = ? ORDER BY version DESC LIMIT 1`

	var raw string
	err := db.QueryRowContext(ctx, q, clientID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("latest plan: %w", err)
	}

	var plan domain.InterventionContext
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &plan, nil
}

// Version returns one specific plan version for a client.
func (r *PlanRepo) Version(ctx context.Context, db *sql.DB, clientID string, version int) (*domain.InterventionContext, error) {
	const q = `SELECT plan_json FROM meal_plans WHERE client_id = ? AND version = ?`

	var raw string
	err := db.QueryRowContext(ctx, q, clientID, version).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("get plan version: %w", err)
	}

	var plan domain.InterventionContext
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &plan, nil
}
