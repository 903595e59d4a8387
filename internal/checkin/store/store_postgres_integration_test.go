//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"gatepass/internal/checkin/models"
	"gatepass/internal/checkin/store"
	"gatepass/internal/platform/postgres"
	"gatepass/pkg/testutil/containers"
)

type PostgresLedgerSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresLedgerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresLedgerSuite))
}

func (s *PostgresLedgerSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.EnsureSchema(context.Background(), s.postgres.Pool))
	s.store = store.NewPostgres(s.postgres.Pool)
}

func (s *PostgresLedgerSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "checkins"))
}

func newTestEvent(token, venue string, outcome models.Outcome, at time.Time) models.Event {
	return models.Event{
		ID:         uuid.NewString(),
		Token:      token,
		Venue:      venue,
		Outcome:    outcome,
		Source:     models.SourceScan,
		OccurredAt: at,
	}
}

func (s *PostgresLedgerSuite) TestAppendAndExistsGranted() {
	ctx := context.Background()
	now := time.Now().UTC()

	s.Require().NoError(s.store.Append(ctx, newTestEvent("tok-1", "Venue A", models.OutcomeGranted, now)))

	granted, err := s.store.ExistsGranted(ctx, "tok-1", "Venue A")
	s.Require().NoError(err)
	s.True(granted)

	// Scoping: same token, different venue.
	granted, err = s.store.ExistsGranted(ctx, "tok-1", "Venue B")
	s.Require().NoError(err)
	s.False(granted)
}

func (s *PostgresLedgerSuite) TestNonGrantedOutcomesDoNotMark() {
	ctx := context.Background()
	now := time.Now().UTC()

	s.Require().NoError(s.store.Append(ctx, newTestEvent("tok-1", "Venue A", models.OutcomeDuplicate, now)))
	s.Require().NoError(s.store.Append(ctx, newTestEvent("bogus", "Venue A", models.OutcomeDeniedUnknownToken, now)))

	granted, err := s.store.ExistsGranted(ctx, "tok-1", "Venue A")
	s.Require().NoError(err)
	s.False(granted)
}

func (s *PostgresLedgerSuite) TestListByTokenInOrder() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	s.Require().NoError(s.store.Append(ctx, newTestEvent("tok-1", "Venue A", models.OutcomeGranted, base)))
	s.Require().NoError(s.store.Append(ctx, newTestEvent("tok-1", "Venue A", models.OutcomeDuplicate, base.Add(time.Minute))))
	s.Require().NoError(s.store.Append(ctx, newTestEvent("tok-2", "Venue A", models.OutcomeGranted, base.Add(2*time.Minute))))

	events, err := s.store.ListByToken(ctx, "tok-1")
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(models.OutcomeGranted, events[0].Outcome)
	s.Equal(models.OutcomeDuplicate, events[1].Outcome)

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}
