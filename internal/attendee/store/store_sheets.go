package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gatepass/internal/attendee/models"
	"gatepass/pkg/platform/sentinel"
)

// SheetClient is the slice of the spreadsheet API this adapter needs,
// satisfied by platform/sheets.Client.
type SheetClient interface {
	ReadAll(ctx context.Context, sheet string) ([][]interface{}, error)
	AppendRow(ctx context.Context, sheet string, row []interface{}) error
}

// Column layout of the attendees worksheet. The header row occupies row 1;
// these names are the schema contract with the spreadsheet and must not be
// reordered under deployed sheets.
var attendeeHeader = []interface{}{
	"id", "token", "name", "organization", "fee_category", "email", "phone", "default_venue", "registered_at",
}

const sheetTimeLayout = time.RFC3339

// SheetsStore persists attendees in a Google Sheets worksheet. The sheet
// cannot enforce a unique token column, so Create does a read-then-append;
// the engine's race tolerance (documented in the checkin service) covers
// the gap, and token entropy makes an actual collision practically
// unreachable.
type SheetsStore struct {
	client SheetClient
	sheet  string
}

func NewSheets(client SheetClient, sheet string) *SheetsStore {
	return &SheetsStore{client: client, sheet: sheet}
}

func (s *SheetsStore) Create(ctx context.Context, a models.Attendee) error {
	existing, err := s.FindByToken(ctx, a.Token)
	if err == nil && existing.Token == a.Token {
		return sentinel.ErrConflict
	}
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return err
	}
	row := []interface{}{
		a.ID,
		a.Token,
		a.Name,
		a.Organization,
		string(a.FeeCategory),
		a.Email,
		a.Phone,
		a.DefaultVenue,
		a.RegisteredAt.Format(sheetTimeLayout),
	}
	if err := s.client.AppendRow(ctx, s.sheet, row); err != nil {
		return fmt.Errorf("append attendee row: %w", err)
	}
	return nil
}

// EnsureHeader writes the header row into an empty worksheet so a fresh
// spreadsheet works without manual setup. Idempotent.
func (s *SheetsStore) EnsureHeader(ctx context.Context) error {
	rows, err := s.client.ReadAll(ctx, s.sheet)
	if err != nil {
		return fmt.Errorf("read attendees sheet: %w", err)
	}
	if len(rows) > 0 {
		return nil
	}
	if err := s.client.AppendRow(ctx, s.sheet, attendeeHeader); err != nil {
		return fmt.Errorf("write attendees header: %w", err)
	}
	return nil
}

func (s *SheetsStore) FindByToken(ctx context.Context, token string) (models.Attendee, error) {
	rows, err := s.client.ReadAll(ctx, s.sheet)
	if err != nil {
		return models.Attendee{}, fmt.Errorf("read attendees sheet: %w", err)
	}
	// Header row at index 0.
	for i := 1; i < len(rows); i++ {
		a := parseAttendeeRow(rows[i])
		if a.Token == token {
			return a, nil
		}
	}
	return models.Attendee{}, sentinel.ErrNotFound
}

func (s *SheetsStore) List(ctx context.Context) ([]models.Attendee, error) {
	rows, err := s.client.ReadAll(ctx, s.sheet)
	if err != nil {
		return nil, fmt.Errorf("read attendees sheet: %w", err)
	}
	var out []models.Attendee
	for i := 1; i < len(rows); i++ {
		out = append(out, parseAttendeeRow(rows[i]))
	}
	return out, nil
}

func parseAttendeeRow(row []interface{}) models.Attendee {
	a := models.Attendee{
		ID:           cell(row, 0),
		Token:        cell(row, 1),
		Name:         cell(row, 2),
		Organization: cell(row, 3),
		FeeCategory:  models.FeeCategory(cell(row, 4)),
		Email:        cell(row, 5),
		Phone:        cell(row, 6),
		DefaultVenue: cell(row, 7),
	}
	if ts, err := time.Parse(sheetTimeLayout, cell(row, 8)); err == nil {
		a.RegisteredAt = ts
	}
	return a
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	return fmt.Sprint(row[i])
}
