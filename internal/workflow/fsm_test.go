package workflow

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		from, to domain.ClientState
		want     bool
	}{
		{domain.StateNewClient, domain.StateIntakeCompleted, true},
		{domain.StateIntakeCompleted, domain.StateDiagnosed, true},
		{domain.StateDiagnosed, domain.StatePlanGenerated, true},
		{domain.StatePlanGenerated, domain.StateActiveMonitoring, true},
		{domain.StateNewClient, domain.StatePlanGenerated, false},
		{domain.StateNewClient, domain.StateDiagnosed, false},
		{domain.StateDiagnosed, domain.StateNewClient, false},
		{domain.StatePlanGenerated, domain.StateDiagnosed, false},
		{domain.StateActiveMonitoring, domain.StateIntakeCompleted, false},
		{domain.StateActiveMonitoring, domain.StatePlanGenerated, false},
	}
	for _, tt := range tests {
		if got := IsValidTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("IsValidTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestFSM_RegisterAndTransition(t *testing.T) {
	fsm := NewFSM(newTestDB(t))
	ctx := context.Background()

	c, err := fsm.Register(ctx, "c-1", "Asha")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if c.State != domain.StateNewClient {
		t.Errorf("state = %q, want new_client", c.State)
	}

	c, err = fsm.Transition(ctx, "c-1", domain.StateIntakeCompleted)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if c.State != domain.StateIntakeCompleted {
		t.Errorf("state = %q, want intake_completed", c.State)
	}

	// The stored record reflects the move.
	got, err := fsm.Get(ctx, "c-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State != domain.StateIntakeCompleted {
		t.Errorf("stored state = %q, want intake_completed", got.State)
	}
	if got.StateVersion != 2 {
		t.Errorf("state version = %d, want 2", got.StateVersion)
	}
}

func TestFSM_RejectsIllegalTransition(t *testing.T) {
	fsm := NewFSM(newTestDB(t))
	ctx := context.Background()

	if _, err := fsm.Register(ctx, "c-1", "Asha"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := fsm.Transition(ctx, "c-1", domain.StatePlanGenerated)
	engErr, ok := err.(*domain.EngineError)
	if !ok || engErr.Code != domain.ErrInvalidTransition.Code {
		t.Errorf("err = %v, want invalid-transition", err)
	}

	// Nothing changed and no history was written.
	c, err := fsm.Get(ctx, "c-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.State != domain.StateNewClient {
		t.Errorf("state = %q, want new_client", c.State)
	}
	history, err := fsm.History(ctx, "c-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history = %v, want empty", history)
	}
}

func TestFSM_DuplicateRegister(t *testing.T) {
	fsm := NewFSM(newTestDB(t))
	ctx := context.Background()

	if _, err := fsm.Register(ctx, "c-1", "Asha"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := fsm.Register(ctx, "c-1", "Asha"); err != domain.ErrDuplicateClient {
		t.Errorf("err = %v, want ErrDuplicateClient", err)
	}
}

func TestFSM_HistoryRecordsEveryMove(t *testing.T) {
	fsm := NewFSM(newTestDB(t))
	ctx := context.Background()

	if _, err := fsm.Register(ctx, "c-1", "Asha"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	moves := []domain.ClientState{
		domain.StateIntakeCompleted,
		domain.StateDiagnosed,
		domain.StatePlanGenerated,
		domain.StateActiveMonitoring,
	}
	for _, to := range moves {
		if _, err := fsm.Transition(ctx, "c-1", to); err != nil {
			t.Fatalf("Transition to %s: %v", to, err)
		}
	}

	history, err := fsm.History(ctx, "c-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != len(moves) {
		t.Fatalf("history length = %d, want %d", len(history), len(moves))
	}
	for i, step := range history {
		if step.To != moves[i] {
			t.Errorf("history[%d].To = %q, want %q", i, step.To, moves[i])
		}
	}
	if history[len(history)-1].From != domain.StatePlanGenerated {
		t.Errorf("last from = %q, want plan_generated", history[len(history)-1].From)
	}
}

func TestFSM_ActiveMonitoringIsTerminal(t *testing.T) {
	fsm := NewFSM(newTestDB(t))
	ctx := context.Background()

	if _, err := fsm.Register(ctx, "c-1", "Asha"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	for _, to := range []domain.ClientState{
		domain.StateIntakeCompleted,
		domain.StateDiagnosed,
		domain.StatePlanGenerated,
		domain.StateActiveMonitoring,
	} {
		if _, err := fsm.Transition(ctx, "c-1", to); err != nil {
			t.Fatalf("Transition to %s: %v", to, err)
		}
	}

	if _, err := fsm.Transition(ctx, "c-1", domain.StateIntakeCompleted); err != domain.ErrTerminalState {
		t.Errorf("err = %v, want ErrTerminalState", err)
	}
	c, err := fsm.Get(ctx, "c-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.State != domain.StateActiveMonitoring {
		t.Errorf("state = %q, want active_monitoring", c.State)
	}
}
