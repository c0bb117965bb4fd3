package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

func TestAssessmentRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &AssessmentRepo{}

	a := domain.Assessment{AssessmentID: "a-1", ClientID: "c-1", CreatedAtUnix: 100}
	mustTx(t, db, func(tx *sql.Tx) error { return repo.CreateTx(ctx, tx, a) })

	got, err := repo.GetByID(ctx, db, "a-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ClientID != "c-1" {
		t.Errorf("client = %q, want c-1", got.ClientID)
	}
}

func TestAssessmentRepo_LatestForClient(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &AssessmentRepo{}

	for i, id := range []string{"a-1", "a-2"} {
		a := domain.Assessment{AssessmentID: id, ClientID: "c-1", CreatedAtUnix: int64(100 + i)}
		mustTx(t, db, func(tx *sql.Tx) error { return repo.CreateTx(ctx, tx, a) })
	}

	latest, err := repo.LatestForClient(ctx, db, "c-1")
	if err != nil {
		t.Fatalf("LatestForClient: %v", err)
	}
	if latest.AssessmentID != "a-2" {
		t.Errorf("latest = %q, want a-2", latest.AssessmentID)
	}
}

func TestAssessmentRepo_NotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &AssessmentRepo{}

	if _, err := repo.GetByID(ctx, db, "missing"); err != domain.ErrAssessmentNotFound {
		t.Errorf("GetByID err = %v, want ErrAssessmentNotFound", err)
	}
	if _, err := repo.LatestForClient(ctx, db, "c-none"); err != domain.ErrAssessmentNotFound {
		t.Errorf("LatestForClient err = %v, want ErrAssessmentNotFound", err)
	}
}
