package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"gatepass/internal/checkin/models"
)

// PostgresStore persists the ledger in PostgreSQL. Pure I/O; outcome
// decisions belong to the verification engine.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, e models.Event) error {
	query := `
		INSERT INTO checkins (id, token, venue, outcome, source, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.pool.Exec(ctx, query,
		e.ID,
		e.Token,
		e.Venue,
		string(e.Outcome),
		string(e.Source),
		e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("append checkin: %w", err)
	}
	return nil
}

func (s *PostgresStore) ExistsGranted(ctx context.Context, token, venue string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM checkins
			WHERE token = $1 AND venue = $2 AND outcome = $3
		)
	`
	var exists bool
	err := s.pool.QueryRow(ctx, query, token, venue, string(models.OutcomeGranted)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists granted: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListByToken(ctx context.Context, token string) ([]models.Event, error) {
	query := `
		SELECT id, token, venue, outcome, source, occurred_at
		FROM checkins
		WHERE token = $1
		ORDER BY occurred_at
	`
	rows, err := s.pool.Query(ctx, query, token)
	if err != nil {
		return nil, fmt.Errorf("list checkins by token: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, token, venue, outcome, source, occurred_at
		FROM checkins
		ORDER BY occurred_at
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows pgxRows) ([]models.Event, error) {
	var out []models.Event
	for rows.Next() {
		var e models.Event
		var outcome, source string
		if err := rows.Scan(&e.ID, &e.Token, &e.Venue, &outcome, &source, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan checkin: %w", err)
		}
		e.Outcome = models.Outcome(outcome)
		e.Source = models.Source(source)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checkins: %w", err)
	}
	return out, nil
}
