package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	attendeemodels "gatepass/internal/attendee/models"
	attendeeservice "gatepass/internal/attendee/service"
	checkinmodels "gatepass/internal/checkin/models"
	checkinservice "gatepass/internal/checkin/service"
	"gatepass/internal/credential"
	"gatepass/internal/platform/metrics"
	"gatepass/internal/platform/middleware"
	"gatepass/internal/report"
	"gatepass/pkg/platform/httputil"
)

// AttendeeService is the registration surface the transport needs.
type AttendeeService interface {
	Register(ctx context.Context, req attendeeservice.RegisterRequest) (*attendeeservice.RegisterResult, error)
	List(ctx context.Context) ([]attendeemodels.Attendee, error)
}

// CheckinService is the verification engine surface.
type CheckinService interface {
	Verify(ctx context.Context, token, venue string, source checkinmodels.Source) (checkinservice.Result, error)
}

// CheckinLedger is the read side of the ledger for the audit endpoint.
type CheckinLedger interface {
	List(ctx context.Context) ([]checkinmodels.Event, error)
}

// ReportService aggregates the ledger for the attendance endpoint.
type ReportService interface {
	Attendance(ctx context.Context) ([]report.VenueAttendance, error)
}

// Handler wires the HTTP surface to the services.
type Handler struct {
	attendees AttendeeService
	checkins  CheckinService
	ledger    CheckinLedger
	reports   ReportService
	logger    *slog.Logger
	metrics   *metrics.Metrics

	// strictDuplicates answers DUPLICATE with 409 instead of 200 for
	// deployments where a repeat presentation should hard-stop the lane.
	// The engine's verdict and the ledger row are identical either way.
	strictDuplicates bool

	// venues is the display list offered to checkpoint staff. Informational:
	// verification accepts any venue label.
	venues []string
}

// Options are the behavioral knobs of the HTTP surface.
type Options struct {
	// StrictDuplicates answers DUPLICATE with 409 instead of 200.
	StrictDuplicates bool
	// Venues is the checkpoint picker list served on /venues.
	Venues []string
}

func NewHandler(
	attendees AttendeeService,
	checkins CheckinService,
	ledger CheckinLedger,
	reports ReportService,
	logger *slog.Logger,
	m *metrics.Metrics,
	opts Options,
) *Handler {
	return &Handler{
		attendees:        attendees,
		checkins:         checkins,
		ledger:           ledger,
		reports:          reports,
		logger:           logger,
		metrics:          m,
		strictDuplicates: opts.StrictDuplicates,
		venues:           opts.Venues,
	}
}

// HandleRegister handles POST /attendees.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	var req RegisterAttendeeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.attendees.Register(ctx, attendeeservice.RegisterRequest{
		Name:         req.Name,
		Organization: req.Organization,
		Email:        req.Email,
		Phone:        req.Phone,
		FeeCategory:  req.ParsedFeeCategory(),
		DefaultVenue: req.DefaultVenue,
		BaseURL:      req.BaseURL,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.metrics.IncrementRegistrations()
	h.metrics.ObserveRegister(start)
	h.logger.InfoContext(ctx, "attendee registered",
		"request_id", requestID,
		"attendee_id", res.Attendee.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, fromRegisterResult(res))
}

// HandleVerifyGet handles GET /verify?token=&venue=, the QR redirect path.
func (h *Handler) HandleVerifyGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.verify(w, r, q.Get("token"), q.Get("venue"), checkinmodels.SourceURL)
}

// HandleVerifyPost handles POST /verify for scanner and upload clients. The
// payload goes through the credential codec, so both bare tokens and full
// verification URLs are accepted. Venue precedence: explicit request field,
// then the venue embedded in the payload, then the attendee default.
func (h *Handler) HandleVerifyPost(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	token, venueHint := credential.Decode(req.Payload)
	venue := req.Venue
	if venue == "" {
		venue = venueHint
	}
	h.verify(w, r, token, venue, req.ParsedSource())
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request, token, venue string, source checkinmodels.Source) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	res, err := h.checkins.Verify(ctx, token, venue, source)
	if err != nil {
		h.logger.ErrorContext(ctx, "verification failed",
			"request_id", requestID,
			"venue", venue,
			"source", source,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.metrics.ObserveVerification(res.Outcome, start)
	h.logger.InfoContext(ctx, "credential verified",
		"request_id", requestID,
		"outcome", res.Outcome,
		"venue", res.Venue,
		"source", source,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, h.verifyStatus(res.Outcome), fromVerifyResult(res))
}

func (h *Handler) verifyStatus(outcome checkinmodels.Outcome) int {
	switch outcome {
	case checkinmodels.OutcomeDeniedUnknownToken:
		return http.StatusNotFound
	case checkinmodels.OutcomeDuplicate:
		if h.strictDuplicates {
			return http.StatusConflict
		}
		return http.StatusOK
	default:
		return http.StatusOK
	}
}

// HandleListAttendees handles GET /admin/attendees.
func (h *Handler) HandleListAttendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := h.attendees.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"attendees": attendees})
}

// HandleListCheckins handles GET /admin/checkins, the raw audit trail.
func (h *Handler) HandleListCheckins(w http.ResponseWriter, r *http.Request) {
	events, err := h.ledger.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"checkins": events})
}

// HandleAttendance handles GET /admin/attendance, per-venue totals.
func (h *Handler) HandleAttendance(w http.ResponseWriter, r *http.Request) {
	attendance, err := h.reports.Attendance(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"attendance": attendance})
}

// HandleVenues handles GET /venues, the checkpoint picker list.
func (h *Handler) HandleVenues(w http.ResponseWriter, r *http.Request) {
	venues := h.venues
	if venues == nil {
		venues = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"venues": venues})
}

// HandleHealth handles GET /healthz.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
