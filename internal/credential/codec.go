// Package credential translates between scanned payloads and (token, venue)
// pairs. Every capture path — URL redirect, live camera, photo upload,
// manual paste — funnels through Decode, so the verification engine never
// cares how the payload was obtained.
package credential

import (
	"net/url"
	"strings"

	dErrors "gatepass/pkg/domain-errors"
)

// Decode extracts the credential token and an optional venue hint from a
// scanned payload. A payload that parses as an absolute URL yields its
// "token" and "venue" query parameters; anything else is treated as a raw
// token with no hint. Whitespace-only payloads decode to an empty token,
// which the engine denies without a lookup.
//
// Decode normalizes whitespace: the payload and any extracted parameters
// come back trimmed, so Encode/Decode round-trips exactly for tokens with
// no leading or trailing whitespace — which issued tokens, being URL-safe
// base64, never have.
func Decode(payload string) (token, venueHint string) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return "", ""
	}
	if u, err := url.Parse(trimmed); err == nil && u.IsAbs() && u.Host != "" {
		q := u.Query()
		return strings.TrimSpace(q.Get("token")), strings.TrimSpace(q.Get("venue"))
	}
	return trimmed, ""
}

// Encode builds the canonical verification URL embedded in QR codes:
// <base>?token=<token>&venue=<venue>, ASCII query-encoded. Round-trips with
// Decode for any non-empty token and any venue.
func Encode(baseURL, token, venue string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "token must not be empty")
	}
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "base URL must be absolute")
	}
	q := u.Query()
	q.Set("token", token)
	q.Set("venue", venue)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
