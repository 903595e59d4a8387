package http

import (
	"encoding/base64"

	attendeemodels "gatepass/internal/attendee/models"
	attendeeservice "gatepass/internal/attendee/service"
	checkinservice "gatepass/internal/checkin/service"
)

// RegisterAttendeeResponse returns everything the front desk needs to hand
// out a badge: the stored record, the verification URL and the QR image.
type RegisterAttendeeResponse struct {
	Attendee        attendeemodels.Attendee `json:"attendee"`
	Token           string                  `json:"token"`
	VerificationURL string                  `json:"verification_url"`
	QRPNGBase64     string                  `json:"qr_png_base64"`
}

func fromRegisterResult(res *attendeeservice.RegisterResult) RegisterAttendeeResponse {
	return RegisterAttendeeResponse{
		Attendee:        res.Attendee,
		Token:           res.Attendee.Token,
		VerificationURL: res.VerificationURL,
		QRPNGBase64:     base64.StdEncoding.EncodeToString(res.QRPNG),
	}
}

// VerifyResponse is the checkpoint-facing verdict.
type VerifyResponse struct {
	Outcome  string                   `json:"outcome"`
	Venue    string                   `json:"venue,omitempty"`
	Attendee *attendeemodels.Snapshot `json:"attendee,omitempty"`
}

func fromVerifyResult(res checkinservice.Result) VerifyResponse {
	return VerifyResponse{
		Outcome:  string(res.Outcome),
		Venue:    res.Venue,
		Attendee: res.Attendee,
	}
}
