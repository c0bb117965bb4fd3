package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

func savePlan(t *testing.T, db *sql.DB, planID, clientID string, version int) {
	t.Helper()
	repo := &PlanRepo{}
	plan := domain.InterventionContext{
		AssessmentID: "a-1",
		PlanVersion:  version,
		Days:         []domain.DayPlan{{Day: 1}},
	}
	mustTx(t, db, func(tx *sql.Tx) error {
		return repo.SaveTx(context.Background(), tx, planID, clientID, plan, int64(version*100))
	})
}

func TestPlanRepo_VersionsAreMonotonic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &PlanRepo{}

	mustTx(t, db, func(tx *sql.Tx) error {
		v, err := repo.NextVersionTx(ctx, tx, "c-1")
		if err != nil {
			return err
		}
		if v != 1 {
			t.Errorf("first version = %d, want 1", v)
		}
		return nil
	})

	savePlan(t, db, "p-1", "c-1", 1)
	savePlan(t, db, "p-2", "c-1", 2)

	mustTx(t, db, func(tx *sql.Tx) error {
		v, err := repo.NextVersionTx(ctx, tx, "c-1")
		if err != nil {
			return err
		}
		if v != 3 {
			t.Errorf("next version = %d, want 3", v)
		}
		return nil
	})

	// Versions are per client.
	mustTx(t, db, func(tx *sql.Tx) error {
		v, err := repo.NextVersionTx(ctx, tx, "c-other")
		if err != nil {
			return err
		}
		if v != 1 {
			t.Errorf("other client version = %d, want 1", v)
		}
		return nil
	})
}

func TestPlanRepo_LatestAndVersion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &PlanRepo{}

	savePlan(t, db, "p-1", "c-1", 1)
	savePlan(t, db, "p-2", "c-1", 2)

	latest, err := repo.Latest(ctx, db, "c-1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.PlanVersion != 2 {
		t.Errorf("latest version = %d, want 2", latest.PlanVersion)
	}

	v1, err := repo.Version(ctx, db, "c-1", 1)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v1.PlanVersion != 1 {
		t.Errorf("version = %d, want 1", v1.PlanVersion)
	}
}

func TestPlanRepo_NotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &PlanRepo{}

	if _, err := repo.Latest(ctx, db, "c-none"); err != domain.ErrPlanNotFound {
		t.Errorf("Latest err = %v, want ErrPlanNotFound", err)
	}
	if _, err := repo.Version(ctx, db, "c-none", 1); err != domain.ErrPlanNotFound {
		t.Errorf("Version err = %v, want ErrPlanNotFound", err)
	}
}
