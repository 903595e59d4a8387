//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"gatepass/internal/attendee/models"
	"gatepass/internal/attendee/store"
	"gatepass/internal/platform/postgres"
	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.EnsureSchema(context.Background(), s.postgres.Pool))
	s.store = store.NewPostgres(s.postgres.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "attendees"))
}

func newTestAttendee(token string) models.Attendee {
	return models.Attendee{
		ID:           uuid.NewString(),
		Token:        token,
		Name:         "Ana López",
		Organization: "Colegio de Guías",
		FeeCategory:  models.FeeGuideHomeRegion,
		Email:        "ana@example.org",
		Phone:        "+52 55 0000 0000",
		DefaultVenue: "Venue A",
		RegisteredAt: time.Now().UTC(),
	}
}

func (s *PostgresStoreSuite) TestCreateAndFindByToken() {
	ctx := context.Background()
	want := newTestAttendee("tok-1")
	s.Require().NoError(s.store.Create(ctx, want))

	got, err := s.store.FindByToken(ctx, "tok-1")
	s.Require().NoError(err)
	s.Equal(want.ID, got.ID)
	s.Equal(want.Name, got.Name)
	s.Equal(want.FeeCategory, got.FeeCategory)
	s.Equal(want.DefaultVenue, got.DefaultVenue)
	s.WithinDuration(want.RegisteredAt, got.RegisteredAt, time.Second)
}

func (s *PostgresStoreSuite) TestFindByTokenNotFound() {
	_, err := s.store.FindByToken(context.Background(), "missing")
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *PostgresStoreSuite) TestCreateDuplicateToken() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newTestAttendee("tok-dup")))

	err := s.store.Create(ctx, newTestAttendee("tok-dup"))
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrConflict))

	// The first write survives.
	got, err := s.store.FindByToken(ctx, "tok-dup")
	s.Require().NoError(err)
	s.Equal("Ana López", got.Name)
}

func (s *PostgresStoreSuite) TestListOrderedByRegistration() {
	ctx := context.Background()
	first := newTestAttendee("tok-a")
	first.RegisteredAt = time.Now().UTC().Add(-time.Hour)
	second := newTestAttendee("tok-b")

	s.Require().NoError(s.store.Create(ctx, second))
	s.Require().NoError(s.store.Create(ctx, first))

	got, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("tok-a", got[0].Token)
	s.Equal("tok-b", got[1].Token)
}
