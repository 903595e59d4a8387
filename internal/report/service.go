// Package report computes attendance figures from the check-in ledger.
//
// This is where the engine's documented race gets resolved: concurrent
// verifications may have recorded more than one GRANTED row for the same
// (token, venue) pair, so counting keeps only the earliest GRANTED per pair
// instead of trusting raw row counts.
package report

import (
	"context"
	"sort"
	"time"

	"gatepass/internal/checkin/models"
	dErrors "gatepass/pkg/domain-errors"
)

// Ledger is the read side of the check-in collection.
type Ledger interface {
	List(ctx context.Context) ([]models.Event, error)
}

// VenueAttendance summarizes one venue's gate activity.
type VenueAttendance struct {
	Venue string `json:"venue"`
	// Attended counts distinct credentials admitted, duplicates collapsed.
	Attended int `json:"attended"`
	// Duplicates counts repeat presentations of already-admitted
	// credentials.
	Duplicates int `json:"duplicates"`
	// Denied counts presentations of unknown credentials.
	Denied int `json:"denied"`
}

type Service struct {
	ledger Ledger
}

func New(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

// Attendance aggregates the ledger per venue, sorted by venue name.
func (s *Service) Attendance(ctx context.Context) ([]VenueAttendance, error) {
	events, err := s.ledger.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "list check-ins", err)
	}

	type pair struct{ token, venue string }
	firstGranted := make(map[pair]time.Time)
	perVenue := make(map[string]*VenueAttendance)

	venueOf := func(venue string) *VenueAttendance {
		if v, ok := perVenue[venue]; ok {
			return v
		}
		v := &VenueAttendance{Venue: venue}
		perVenue[venue] = v
		return v
	}

	for _, e := range events {
		switch e.Outcome {
		case models.OutcomeGranted:
			key := pair{token: e.Token, venue: e.Venue}
			if seen, ok := firstGranted[key]; !ok {
				firstGranted[key] = e.OccurredAt
				venueOf(e.Venue).Attended++
			} else {
				// A second GRANTED for the pair is the accepted race;
				// count it as a duplicate presentation and keep the
				// earliest timestamp.
				venueOf(e.Venue).Duplicates++
				if e.OccurredAt.Before(seen) {
					firstGranted[key] = e.OccurredAt
				}
			}
		case models.OutcomeDuplicate:
			venueOf(e.Venue).Duplicates++
		case models.OutcomeDeniedUnknownToken:
			venueOf(e.Venue).Denied++
		}
	}

	out := make([]VenueAttendance, 0, len(perVenue))
	for _, v := range perVenue {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Venue < out[j].Venue })
	return out, nil
}
