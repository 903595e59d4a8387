package models

import "time"

// Outcome is the terminal result of one verification attempt.
type Outcome string

const (
	// OutcomeGranted admits the credential at the venue.
	OutcomeGranted Outcome = "GRANTED"
	// OutcomeDeniedUnknownToken rejects a credential no attendee owns.
	OutcomeDeniedUnknownToken Outcome = "DENIED_UNKNOWN_TOKEN"
	// OutcomeDuplicate flags a credential already granted at this venue.
	// Informational, not a hard failure: staff still see who presented it.
	OutcomeDuplicate Outcome = "DUPLICATE"
)

// Source records how the scanned payload reached the engine. Informational
// only; the engine never branches on it.
type Source string

const (
	SourceURL    Source = "url"
	SourceScan   Source = "scan"
	SourceUpload Source = "upload"
	SourceManual Source = "manual"
)

// Event is one row of the append-only check-in ledger. Rows are never
// mutated or deleted; every verification attempt leaves exactly one,
// including denials, so the whole event stays auditable.
type Event struct {
	ID         string    `json:"id"`
	Token      string    `json:"token"`
	Venue      string    `json:"venue"`
	Outcome    Outcome   `json:"outcome"`
	Source     Source    `json:"source,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
