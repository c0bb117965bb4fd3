package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

// AssessmentRepo handles persistence for assessment records.
type AssessmentRepo struct{}

// CreateTx inserts a new assessment within an existing transaction.
func (r *AssessmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, a domain.Assessment) error {
	const q = `INSERT INTO assessments (assessment_id, client_id, created_at_unix) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, a.AssessmentID, a.ClientID, a.CreatedAtUnix); err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

// GetByID retrieves an assessment by its ID.
func (r *AssessmentRepo) GetByID(ctx context.Context, db *sql.DB, assessmentID string) (*domain.Assessment, error) {
	const q = `SELECT assessment_id, client_id, created_at_unix FROM assessments WHERE assessment_id = ?`

	var a domain.Assessment
	err := db.QueryRowContext(ctx, q, assessmentID).Scan(&a.AssessmentID, &a.ClientID, &a.CreatedAtUnix)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return &a, nil
}

// LatestForClient returns the client's most recent assessment.
func (r *AssessmentRepo) LatestForClient(ctx context.Context, db *sql.DB, clientID string) (*domain.Assessment, error) {
	const q = `SELECT assessment_id, client_id, created_at_unix FROM assessments
WHERE client_id = ? ORDER BY created_at_unix DESC, assessment_id DESC LIMIT 1`

	var a domain.Assessment
	err := db.QueryRowContext(ctx, q, clientID).Scan(&a.AssessmentID, &a.ClientID, &a.CreatedAtUnix)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("latest assessment: %w", err)
	}
	return &a, nil
}
