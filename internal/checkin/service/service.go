package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	attendeemodels "gatepass/internal/attendee/models"
	"gatepass/internal/checkin/models"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/sentinel"
)

// AttendeeStore is the slice of the attendee collection the engine needs:
// token resolution only.
type AttendeeStore interface {
	FindByToken(ctx context.Context, token string) (attendeemodels.Attendee, error)
}

// Ledger is the append-only check-in collection.
type Ledger interface {
	Append(ctx context.Context, e models.Event) error
	ExistsGranted(ctx context.Context, token, venue string) (bool, error)
}

// Result is what a checkpoint sees after presenting a credential. Attendee
// is set whenever the token resolved — including on DUPLICATE, so staff can
// still see who is standing in front of them and make a judgment call.
type Result struct {
	Outcome  models.Outcome
	Venue    string
	Attendee *attendeemodels.Snapshot
}

// Service is the verification engine: it resolves a credential, decides the
// outcome for the claimed venue, and records the attempt. It holds no state
// of its own and takes no locks; consistency rests entirely on the stores.
type Service struct {
	attendees AttendeeStore
	ledger    Ledger
}

func New(attendees AttendeeStore, ledger Ledger) *Service {
	return &Service{attendees: attendees, ledger: ledger}
}

// Verify decides GRANTED / DUPLICATE / DENIED_UNKNOWN_TOKEN for one
// presented credential at one venue and appends the outcome to the ledger.
// Check-in is scoped per venue: each venue is an independent admission
// gate, so the same credential is expected once per venue, not once total.
//
// Known race: two concurrent calls for the same (token, venue) can both
// observe "no existing GRANTED" and both record GRANTED — the backing
// stores give no multi-call transaction. This is accepted; reporting
// collapses to the earliest GRANTED per pair (see internal/report).
//
// Any store failure comes back as CodeUnavailable. Retrying the whole call
// is safe: partial completion at worst lost the append, and re-verifying a
// granted pair yields DUPLICATE rather than a second admission.
func (s *Service) Verify(ctx context.Context, token, venue string, source models.Source) (Result, error) {
	token = strings.TrimSpace(token)
	venue = strings.TrimSpace(venue)

	// Nothing identifiable to record against: deny without touching the
	// ledger.
	if token == "" {
		return Result{Outcome: models.OutcomeDeniedUnknownToken, Venue: venue}, nil
	}

	attendee, err := s.attendees.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Audit the failed attempt under the raw presented token even
			// though no attendee owns it.
			if err := s.append(ctx, token, venue, models.OutcomeDeniedUnknownToken, source); err != nil {
				return Result{}, err
			}
			return Result{Outcome: models.OutcomeDeniedUnknownToken, Venue: venue}, nil
		}
		return Result{}, dErrors.Wrap(dErrors.CodeUnavailable, "resolve token", err)
	}

	if venue == "" {
		venue = attendee.DefaultVenue
	}
	snapshot := attendee.Snapshot()

	granted, err := s.ledger.ExistsGranted(ctx, token, venue)
	if err != nil {
		return Result{}, dErrors.Wrap(dErrors.CodeUnavailable, "check existing admission", err)
	}

	outcome := models.OutcomeGranted
	if granted {
		outcome = models.OutcomeDuplicate
	}
	if err := s.append(ctx, token, venue, outcome, source); err != nil {
		return Result{}, err
	}
	return Result{Outcome: outcome, Venue: venue, Attendee: &snapshot}, nil
}

func (s *Service) append(ctx context.Context, token, venue string, outcome models.Outcome, source models.Source) error {
	event := models.Event{
		ID:         uuid.NewString(),
		Token:      token,
		Venue:      venue,
		Outcome:    outcome,
		Source:     source,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.ledger.Append(ctx, event); err != nil {
		return dErrors.Wrap(dErrors.CodeUnavailable, "append check-in", err)
	}
	return nil
}
