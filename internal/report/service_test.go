package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/internal/checkin/models"
	"gatepass/internal/checkin/store"
	"gatepass/internal/report"
	reportmocks "gatepass/mocks/report"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/sentinel"

	"go.uber.org/mock/gomock"
)

func appendEvent(t *testing.T, s *store.InMemoryStore, token, venue string, outcome models.Outcome, at time.Time) {
	t.Helper()
	require.NoError(t, s.Append(context.Background(), models.Event{
		ID:         token + "-" + venue + "-" + at.Format(time.RFC3339Nano),
		Token:      token,
		Venue:      venue,
		Outcome:    outcome,
		Source:     models.SourceScan,
		OccurredAt: at,
	}))
}

func TestAttendance(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("counts per venue, sorted by name", func(t *testing.T) {
		s := store.NewInMemoryStore()
		appendEvent(t, s, "T1", "Venue B", models.OutcomeGranted, base)
		appendEvent(t, s, "T2", "Venue A", models.OutcomeGranted, base.Add(time.Minute))
		appendEvent(t, s, "T2", "Venue A", models.OutcomeDuplicate, base.Add(2*time.Minute))
		appendEvent(t, s, "bogus", "Venue A", models.OutcomeDeniedUnknownToken, base.Add(3*time.Minute))

		got, err := report.New(s).Attendance(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, report.VenueAttendance{Venue: "Venue A", Attended: 1, Duplicates: 1, Denied: 1}, got[0])
		assert.Equal(t, report.VenueAttendance{Venue: "Venue B", Attended: 1}, got[1])
	})

	t.Run("racing granted rows collapse to one admission", func(t *testing.T) {
		s := store.NewInMemoryStore()
		// Two GRANTED rows for the same pair, as left behind by two
		// verifications that interleaved between check and append.
		appendEvent(t, s, "T1", "Venue A", models.OutcomeGranted, base.Add(time.Second))
		appendEvent(t, s, "T1", "Venue A", models.OutcomeGranted, base)

		got, err := report.New(s).Attendance(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].Attended)
		assert.Equal(t, 1, got[0].Duplicates)
	})

	t.Run("same token at different venues counts at each", func(t *testing.T) {
		s := store.NewInMemoryStore()
		appendEvent(t, s, "T1", "Venue A", models.OutcomeGranted, base)
		appendEvent(t, s, "T1", "Venue B", models.OutcomeGranted, base.Add(time.Minute))

		got, err := report.New(s).Attendance(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].Attended)
		assert.Equal(t, 1, got[1].Attended)
	})

	t.Run("empty ledger yields empty report", func(t *testing.T) {
		got, err := report.New(store.NewInMemoryStore()).Attendance(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ledger outage surfaces as infrastructure error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ledger := reportmocks.NewMockLedger(ctrl)
		ledger.EXPECT().List(gomock.Any()).Return(nil, sentinel.ErrUnavailable)

		_, err := report.New(ledger).Attendance(ctx)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}
