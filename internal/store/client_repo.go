package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

// ClientRepo handles persistence for client records and their state
// transition history.
type ClientRepo struct{}

// CreateTx inserts a new client within an existing transaction.
func (r *ClientRepo) CreateTx(ctx context.Context, tx *sql.Tx, c domain.Client) error {
	const q = `INSERT INTO clients (client_id, name, state, state_version, created_at_unix, updated_at_unix)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q,
		c.ClientID,
		c.Name,
		string(c.State),
		c.StateVersion,
		c.CreatedAtUnix,
		c.UpdatedAtUnix,
	)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// UpdateStateTx moves a client to a new state within a transaction using
// optimistic locking on state_version.
func (r *ClientRepo) UpdateStateTx(ctx context.Context, tx *sql.Tx, c domain.Client) error {
	const q = `UPDATE clients SET
		state = ?,
		state_version = state_version + 1,
		updated_at_unix = ?
	WHERE client_id = ? AND state_version = ?`

	res, err := tx.ExecContext(ctx, q,
		string(c.State),
		c.UpdatedAtUnix,
		c.ClientID,
		c.StateVersion,
	)
	if err != nil {
		return fmt.Errorf("update client state: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrOptimisticLock
	}
	return nil
}

// AppendTransitionTx records one entry in the append-only transition log.
func (r *ClientRepo) AppendTransitionTx(ctx context.Context, tx *sql.Tx, clientID string, t domain.StateTransition) error {
	const q = `INSERT INTO state_transitions (client_id, from_state, to_state, at_unix) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, clientID, string(t.From), string(t.To), t.AtUnix); err != nil {
		return fmt.Errorf("append transition: %w", err)
	}
	return nil
}

// GetByID retrieves a client by its ID.
func (r *ClientRepo) GetByID(ctx context.Context, db *sql.DB, clientID string) (*domain.Client, error) {
	const q = `SELECT client_id, name, state, state_version, created_at_unix, updated_at_unix
FROM clients WHERE client_id = ?`

	row := db.QueryRowContext(ctx, q, clientID)

	var c domain.Client
	var state string
	err := row.Scan(&c.ClientID, &c.Name, &state, &c.StateVersion, &c.CreatedAtUnix, &c.UpdatedAtUnix)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	c.State = domain.ClientState(state)
	return &c, nil
}

// Transitions returns a client's transition history, oldest first.
func (r *ClientRepo) Transitions(ctx context.Context, db *sql.DB, clientID string) ([]domain.StateTransition, error) {
	const q = `SELECT from_state, to_state, at_unix FROM state_transitions WHERE client_id = ? ORDER BY id`

	rows, err := db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	defer rows.Close()

	var out []domain.StateTransition
	for rows.Next() {
		var t domain.StateTransition
		var from, to string
		if err := rows.Scan(&from, &to, &t.AtUnix); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		t.From = domain.ClientState(from)
		t.To = domain.ClientState(to)
		out = append(out, t)
	}
	return out, rows.Err()
}
