package db

import (
	"database/sql"
	"time"
)

// CommitAttempt is one journaled commitment request. The journal exists for
// operators: a failed attempt marked partial means an outbound channel was
// opened without its inbound counterpart and needs manual reconciliation.
// The commitment flow itself never reads the journal.
type CommitAttempt struct {
	ID        string
	Market    string
	Symbol    string
	Balance   string
	CreatedAt time.Time
}

type Commits interface {
	RecordAttempt(attempt *CommitAttempt) error
	MarkCommitted(id string) error
	MarkFailed(id string, reason string, partial bool) error
}

type PostgresCommits struct {
	db *sql.DB
}

func (p *PostgresCommits) RecordAttempt(attempt *CommitAttempt) error {
	return NewTransactor(p.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO commit_attempts (id, market, symbol, balance, state, created_at) VALUES ($1, $2, $3, $4, 'PENDING', $5)",
			attempt.ID,
			attempt.Market,
			attempt.Symbol,
			attempt.Balance,
			attempt.CreatedAt,
		)
		return err
	})
}

func (p *PostgresCommits) MarkCommitted(id string) error {
	return NewTransactor(p.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"UPDATE commit_attempts SET state = 'COMMITTED' WHERE id = $1",
			id,
		)
		return err
	})
}

func (p *PostgresCommits) MarkFailed(id string, reason string, partial bool) error {
	return NewTransactor(p.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"UPDATE commit_attempts SET state = 'FAILED', failure_reason = $2, partial = $3 WHERE id = $1",
			id,
			reason,
			partial,
		)
		return err
	})
}

// NoopCommits satisfies Commits when no database is configured.
type NoopCommits struct{}

func (n *NoopCommits) RecordAttempt(attempt *CommitAttempt) error {
	return nil
}

func (n *NoopCommits) MarkCommitted(id string) error {
	return nil
}

func (n *NoopCommits) MarkFailed(id string, reason string, partial bool) error {
	return nil
}
