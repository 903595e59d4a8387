//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gatepass/internal/checkin/models"
	"gatepass/internal/checkin/store"
	"gatepass/pkg/testutil/containers"
)

type RedisLedgerSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisStore
}

func TestRedisLedgerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLedgerSuite))
}

func (s *RedisLedgerSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = store.NewRedis(s.redis.Client)
}

func (s *RedisLedgerSuite) SetupTest() {
	s.Require().NoError(s.redis.Client.FlushAll(context.Background()).Err())
}

func (s *RedisLedgerSuite) TestAppendAndExistsGranted() {
	ctx := context.Background()
	now := time.Now().UTC()

	s.Require().NoError(s.store.Append(ctx, newTestEvent("tok-1", "Venue A", models.OutcomeGranted, now)))

	granted, err := s.store.ExistsGranted(ctx, "tok-1", "Venue A")
	s.Require().NoError(err)
	s.True(granted)

	granted, err = s.store.ExistsGranted(ctx, "tok-1", "Venue B")
	s.Require().NoError(err)
	s.False(granted)
}

func (s *RedisLedgerSuite) TestEventsRoundTrip() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	want := newTestEvent("tok-1", "Venue A", models.OutcomeGranted, base)
	s.Require().NoError(s.store.Append(ctx, want))
	s.Require().NoError(s.store.Append(ctx, newTestEvent("tok-2", "Venue B", models.OutcomeDeniedUnknownToken, base.Add(time.Second))))

	events, err := s.store.ListByToken(ctx, "tok-1")
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(want.ID, events[0].ID)
	s.Equal(want.Venue, events[0].Venue)
	s.Equal(want.Outcome, events[0].Outcome)
	s.True(want.OccurredAt.Equal(events[0].OccurredAt))

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *RedisLedgerSuite) TestVenuesWithSeparatorLikeNames() {
	ctx := context.Background()
	now := time.Now().UTC()

	// Venue labels are opaque; spaces and unicode must not confuse the
	// granted-set membership.
	s.Require().NoError(s.store.Append(ctx, newTestEvent("tok-1", "Día 2 / Auditorio", models.OutcomeGranted, now)))

	granted, err := s.store.ExistsGranted(ctx, "tok-1", "Día 2 / Auditorio")
	s.Require().NoError(err)
	s.True(granted)

	granted, err = s.store.ExistsGranted(ctx, "tok-1", "Día 2")
	s.Require().NoError(err)
	s.False(granted)
}
