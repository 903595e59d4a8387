package http

import (
	attendeemodels "gatepass/internal/attendee/models"
	"gatepass/internal/checkin/models"
)

// RegisterAttendeeRequest is the registration form body.
type RegisterAttendeeRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	FeeCategory  string `json:"fee_category"`
	DefaultVenue string `json:"default_venue"`
	// BaseURL optionally overrides the configured verification origin for
	// the QR code, e.g. when registering against a tunnel.
	BaseURL string `json:"base_url"`
}

// ParsedFeeCategory returns the typed fee category; validation happens in
// the service.
func (r RegisterAttendeeRequest) ParsedFeeCategory() attendeemodels.FeeCategory {
	return attendeemodels.FeeCategory(r.FeeCategory)
}

// VerifyRequest is the scanned-payload body for POST /verify. Payload may be
// a bare token or a full verification URL; an explicit Venue wins over any
// venue embedded in the payload.
type VerifyRequest struct {
	Payload string `json:"payload"`
	Venue   string `json:"venue"`
	Source  string `json:"source"`
}

// ParsedSource maps the free-form source tag to a known value, defaulting
// to scan for unknown tags since POST /verify is the scanner path.
func (r VerifyRequest) ParsedSource() models.Source {
	switch models.Source(r.Source) {
	case models.SourceURL, models.SourceScan, models.SourceUpload, models.SourceManual:
		return models.Source(r.Source)
	}
	return models.SourceScan
}
