package models

import "time"

// FeeCategory classifies an attendee for reporting. It never gates access:
// verification treats every registered credential the same.
type FeeCategory string

const (
	FeeGeneralPublic    FeeCategory = "general_public"
	FeeStudent          FeeCategory = "student"
	FeeGuideHomeRegion  FeeCategory = "guide_home_region"
	FeeGuideOtherRegion FeeCategory = "guide_other_region"
)

// Valid reports whether the category is one of the known values. An empty
// category is allowed and left empty rather than defaulted.
func (c FeeCategory) Valid() bool {
	switch c {
	case "", FeeGeneralPublic, FeeStudent, FeeGuideHomeRegion, FeeGuideOtherRegion:
		return true
	}
	return false
}

// Attendee is one registered participant. The token is the natural key:
// it is issued exactly once at registration, never mutated, never reused,
// and every check-in references it.
type Attendee struct {
	ID           string      `json:"id"`
	Token        string      `json:"token"`
	Name         string      `json:"name"`
	Organization string      `json:"organization,omitempty"`
	Email        string      `json:"email,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	FeeCategory  FeeCategory `json:"fee_category,omitempty"`
	DefaultVenue string      `json:"default_venue,omitempty"`
	RegisteredAt time.Time   `json:"registered_at"`
}

// Snapshot is the subset of attendee fields surfaced to checkpoint staff on
// a verification result.
type Snapshot struct {
	Name        string      `json:"name"`
	FeeCategory FeeCategory `json:"fee_category,omitempty"`
}

// Snapshot extracts the display fields for verification responses.
func (a Attendee) Snapshot() Snapshot {
	return Snapshot{Name: a.Name, FeeCategory: a.FeeCategory}
}
