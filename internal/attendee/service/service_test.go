package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gatepass/internal/attendee/models"
	"gatepass/internal/attendee/service"
	"gatepass/internal/attendee/store"
	"gatepass/internal/credential"
	"gatepass/internal/token"
	attendeemocks "gatepass/mocks/attendee"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/sentinel"
)

const baseURL = "https://checkin.example.org/verify"

func newService() (*service.Service, *store.InMemoryStore) {
	s := store.NewInMemoryStore()
	return service.New(s, token.NewIssuer(), baseURL), s
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path issues token, persists, builds QR artifacts", func(t *testing.T) {
		svc, st := newService()
		res, err := svc.Register(ctx, service.RegisterRequest{
			Name:         "Ana López",
			Organization: "Colegio de Guías",
			FeeCategory:  models.FeeGuideHomeRegion,
			DefaultVenue: "Venue A",
		})
		require.NoError(t, err)
		require.NotEmpty(t, res.Attendee.Token)
		require.NotEmpty(t, res.Attendee.ID)

		// The persisted attendee is resolvable by its token.
		found, err := st.FindByToken(ctx, res.Attendee.Token)
		require.NoError(t, err)
		assert.Equal(t, res.Attendee, found)

		// The verification URL round-trips through the codec.
		gotToken, gotVenue := credential.Decode(res.VerificationURL)
		assert.Equal(t, res.Attendee.Token, gotToken)
		assert.Equal(t, "Venue A", gotVenue)

		require.NotEmpty(t, res.QRPNG)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, res.QRPNG[:4])
	})

	t.Run("name is required", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Register(ctx, service.RegisterRequest{Name: "   "})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("unknown fee category is rejected", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Register(ctx, service.RegisterRequest{
			Name:        "Ana",
			FeeCategory: models.FeeCategory("vip"),
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("empty fee category is allowed", func(t *testing.T) {
		svc, _ := newService()
		res, err := svc.Register(ctx, service.RegisterRequest{Name: "Ana"})
		require.NoError(t, err)
		assert.Empty(t, res.Attendee.FeeCategory)
	})

	t.Run("per-request base URL override", func(t *testing.T) {
		svc, _ := newService()
		res, err := svc.Register(ctx, service.RegisterRequest{
			Name:    "Ana",
			BaseURL: "https://event.example.com",
		})
		require.NoError(t, err)
		assert.Contains(t, res.VerificationURL, "https://event.example.com")
	})
}

func TestRegisterIssuanceRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("collision regenerates and succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		issuer := attendeemocks.NewMockIssuer(ctrl)
		gomock.InOrder(
			issuer.EXPECT().Issue().Return("taken", nil),
			issuer.EXPECT().Issue().Return("fresh", nil),
		)

		st := store.NewInMemoryStore()
		require.NoError(t, st.Create(ctx, models.Attendee{ID: "x", Token: "taken", Name: "Occupant"}))

		svc := service.New(st, issuer, baseURL)
		res, err := svc.Register(ctx, service.RegisterRequest{Name: "Ana"})
		require.NoError(t, err)
		assert.Equal(t, "fresh", res.Attendee.Token)
	})

	t.Run("exhausted retry budget surfaces as collision, not infrastructure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		issuer := attendeemocks.NewMockIssuer(ctrl)
		issuer.EXPECT().Issue().Return("taken", nil).Times(5)

		st := store.NewInMemoryStore()
		require.NoError(t, st.Create(ctx, models.Attendee{ID: "x", Token: "taken", Name: "Occupant"}))

		svc := service.New(st, issuer, baseURL)
		_, err := svc.Register(ctx, service.RegisterRequest{Name: "Ana"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeCollision))
		assert.False(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	t.Run("store outage surfaces as infrastructure error without retrying", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := attendeemocks.NewMockStore(ctrl)
		st.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrUnavailable).Times(1)

		svc := service.New(st, token.NewIssuer(), baseURL)
		_, err := svc.Register(ctx, service.RegisterRequest{Name: "Ana"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
		assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
	})
}

func TestFindByToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	res, err := svc.Register(ctx, service.RegisterRequest{Name: "Ana"})
	require.NoError(t, err)

	found, err := svc.FindByToken(ctx, res.Attendee.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Attendee, found)

	_, err = svc.FindByToken(ctx, "nope")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
