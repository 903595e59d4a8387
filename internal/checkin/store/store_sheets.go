package store

import (
	"context"
	"fmt"
	"time"

	"gatepass/internal/checkin/models"
)

// SheetClient is the slice of the spreadsheet API this adapter needs,
// satisfied by platform/sheets.Client.
type SheetClient interface {
	ReadAll(ctx context.Context, sheet string) ([][]interface{}, error)
	AppendRow(ctx context.Context, sheet string, row []interface{}) error
}

// Column layout of the checkins worksheet. Header row occupies row 1.
var checkinHeader = []interface{}{
	"id", "token", "venue", "outcome", "source", "occurred_at",
}

const sheetTimeLayout = time.RFC3339

// SheetsStore appends ledger rows to a Google Sheets worksheet. The sheet
// offers no duplicate-check index, so ExistsGranted scans all rows; fine at
// event scale (thousands of check-ins), and the engine tolerates the
// read-then-append race this implies.
type SheetsStore struct {
	client SheetClient
	sheet  string
}

func NewSheets(client SheetClient, sheet string) *SheetsStore {
	return &SheetsStore{client: client, sheet: sheet}
}

// EnsureHeader writes the header row into an empty worksheet. Idempotent.
func (s *SheetsStore) EnsureHeader(ctx context.Context) error {
	rows, err := s.client.ReadAll(ctx, s.sheet)
	if err != nil {
		return fmt.Errorf("read checkins sheet: %w", err)
	}
	if len(rows) > 0 {
		return nil
	}
	if err := s.client.AppendRow(ctx, s.sheet, checkinHeader); err != nil {
		return fmt.Errorf("write checkins header: %w", err)
	}
	return nil
}

func (s *SheetsStore) Append(ctx context.Context, e models.Event) error {
	row := []interface{}{
		e.ID,
		e.Token,
		e.Venue,
		string(e.Outcome),
		string(e.Source),
		e.OccurredAt.Format(sheetTimeLayout),
	}
	if err := s.client.AppendRow(ctx, s.sheet, row); err != nil {
		return fmt.Errorf("append checkin row: %w", err)
	}
	return nil
}

func (s *SheetsStore) ExistsGranted(ctx context.Context, token, venue string) (bool, error) {
	events, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, e := range events {
		if e.Token == token && e.Venue == venue && e.Outcome == models.OutcomeGranted {
			return true, nil
		}
	}
	return false, nil
}

func (s *SheetsStore) ListByToken(ctx context.Context, token string) ([]models.Event, error) {
	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Event
	for _, e := range events {
		if e.Token == token {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *SheetsStore) List(ctx context.Context) ([]models.Event, error) {
	rows, err := s.client.ReadAll(ctx, s.sheet)
	if err != nil {
		return nil, fmt.Errorf("read checkins sheet: %w", err)
	}
	var out []models.Event
	for i := 1; i < len(rows); i++ {
		out = append(out, parseCheckinRow(rows[i]))
	}
	return out, nil
}

func parseCheckinRow(row []interface{}) models.Event {
	e := models.Event{
		ID:      cell(row, 0),
		Token:   cell(row, 1),
		Venue:   cell(row, 2),
		Outcome: models.Outcome(cell(row, 3)),
		Source:  models.Source(cell(row, 4)),
	}
	if ts, err := time.Parse(sheetTimeLayout, cell(row, 5)); err == nil {
		e.OccurredAt = ts
	}
	return e
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	return fmt.Sprint(row[i])
}
