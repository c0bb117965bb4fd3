// Package workflow implements the client lifecycle state machine and the
// orchestrator that drives the decision pipeline across it.
package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/store"
)

// validTransitions defines the legal client lifecycle transitions: a
// total order ending at active_monitoring, which has no outgoing edges.
var validTransitions = map[domain.ClientState]map[domain.ClientState]bool{
	domain.StateNewClient:        {domain.StateIntakeCompleted: true},
	domain.StateIntakeCompleted:  {domain.StateDiagnosed: true},
	domain.StateDiagnosed:        {domain.StatePlanGenerated: true},
	domain.StatePlanGenerated:    {domain.StateActiveMonitoring: true},
	domain.StateActiveMonitoring: {},
}

// IsValidTransition checks if a lifecycle transition is legal.
func IsValidTransition(from, to domain.ClientState) bool {
	targets, ok := validTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// FSM manages client lifecycle state with persistence.
type FSM struct {
	DB         *sql.DB
	ClientRepo *store.ClientRepo
}

// NewFSM creates a lifecycle state machine over the given database.
func NewFSM(db *sql.DB) *FSM {
	return &FSM{DB: db, ClientRepo: &store.ClientRepo{}}
}

// Register creates a new client in the new_client state.
func (f *FSM) Register(ctx context.Context, clientID, name string) (*domain.Client, error) {
	if _, err := f.ClientRepo.GetByID(ctx, f.DB, clientID); err == nil {
		return nil, domain.ErrDuplicateClient
	}

	now := time.Now().Unix()
	c := domain.Client{
		ClientID:      clientID,
		Name:          name,
		State:         domain.StateNewClient,
		StateVersion:  1,
		CreatedAtUnix: now,
		UpdatedAtUnix: now,
	}

	tx, err := f.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := f.ClientRepo.CreateTx(ctx, tx, c); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &c, nil
}

// Transition moves a client to a new state inside one transaction,
// appending to the transition history. The whole move is atomic.
func (f *FSM) Transition(ctx context.Context, clientID string, to domain.ClientState) (*domain.Client, error) {
	c, err := f.ClientRepo.GetByID(ctx, f.DB, clientID)
	if err != nil {
		return nil, err
	}

	if targets, ok := validTransitions[c.State]; ok && len(targets) == 0 {
		return nil, domain.ErrTerminalState
	}
	if !IsValidTransition(c.State, to) {
		return nil, domain.NewEngineError(
			domain.ErrInvalidTransition.Code,
			fmt.Sprintf("illegal transition %s -> %s", c.State, to),
		)
	}

	tx, err := f.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	updated := *c
	from := c.State
	updated.State = to
	updated.UpdatedAtUnix = now

	if err := f.ClientRepo.UpdateStateTx(ctx, tx, updated); err != nil {
		return nil, err
	}
	step := domain.StateTransition{From: from, To: to, AtUnix: now}
	if err := f.ClientRepo.AppendTransitionTx(ctx, tx, clientID, step); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	updated.StateVersion++
	return &updated, nil
}

// Get returns a client's current record.
func (f *FSM) Get(ctx context.Context, clientID string) (*domain.Client, error) {
	return f.ClientRepo.GetByID(ctx, f.DB, clientID)
}

// History returns a client's transition log, oldest first.
func (f *FSM) History(ctx context.Context, clientID string) ([]domain.StateTransition, error) {
	return f.ClientRepo.Transitions(ctx, f.DB, clientID)
}
