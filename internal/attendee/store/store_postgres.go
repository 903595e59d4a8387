package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gatepass/internal/attendee/models"
	"gatepass/pkg/platform/sentinel"
)

// PostgresStore persists attendees in PostgreSQL. Pure I/O: validation and
// issuance retries belong to the registration service.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, a models.Attendee) error {
	query := `
		INSERT INTO attendees (id, token, name, organization, fee_category, email, phone, default_venue, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.pool.Exec(ctx, query,
		a.ID,
		a.Token,
		a.Name,
		a.Organization,
		string(a.FeeCategory),
		a.Email,
		a.Phone,
		a.DefaultVenue,
		a.RegisteredAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation on the token index.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create attendee: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByToken(ctx context.Context, token string) (models.Attendee, error) {
	query := `
		SELECT id, token, name, organization, fee_category, email, phone, default_venue, registered_at
		FROM attendees
		WHERE token = $1
	`
	var a models.Attendee
	var fee string
	err := s.pool.QueryRow(ctx, query, token).Scan(
		&a.ID,
		&a.Token,
		&a.Name,
		&a.Organization,
		&fee,
		&a.Email,
		&a.Phone,
		&a.DefaultVenue,
		&a.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Attendee{}, sentinel.ErrNotFound
		}
		return models.Attendee{}, fmt.Errorf("find attendee by token: %w", err)
	}
	a.FeeCategory = models.FeeCategory(fee)
	return a, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Attendee, error) {
	query := `
		SELECT id, token, name, organization, fee_category, email, phone, default_venue, registered_at
		FROM attendees
		ORDER BY registered_at
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	var out []models.Attendee
	for rows.Next() {
		var a models.Attendee
		var fee string
		if err := rows.Scan(
			&a.ID,
			&a.Token,
			&a.Name,
			&a.Organization,
			&fee,
			&a.Email,
			&a.Phone,
			&a.DefaultVenue,
			&a.RegisteredAt,
		); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		a.FeeCategory = models.FeeCategory(fee)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	return out, nil
}
