package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"gatepass/internal/attendee/models"
	"gatepass/internal/credential"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/sentinel"
)

// Store is the attendee half of the repository, declared here so the
// service states exactly what it needs and memory/postgres/sheets adapters
// stay swappable.
type Store interface {
	Create(ctx context.Context, a models.Attendee) error
	FindByToken(ctx context.Context, token string) (models.Attendee, error)
	List(ctx context.Context) ([]models.Attendee, error)
}

// Issuer generates credentials.
type Issuer interface {
	Issue() (string, error)
}

// issueRetries bounds regeneration when the store reports a token
// collision. With 72-bit tokens a single collision is already an entropy
// red flag; exhausting the budget surfaces as CodeCollision, never as a
// generic failure.
const issueRetries = 5

// Service owns registration: validate input, issue a credential, persist
// the attendee, and assemble the QR artifacts the front desk hands out.
type Service struct {
	store   Store
	issuer  Issuer
	baseURL string
}

func New(store Store, issuer Issuer, baseURL string) *Service {
	return &Service{store: store, issuer: issuer, baseURL: baseURL}
}

// RegisterRequest carries the form fields. Only the name is required.
type RegisterRequest struct {
	Name         string
	Organization string
	Email        string
	Phone        string
	FeeCategory  models.FeeCategory
	DefaultVenue string
	// BaseURL overrides the configured verification origin, matching the
	// original flow where staff could point QR codes at the current public
	// deployment.
	BaseURL string
}

// RegisterResult is everything the presentation layer needs to show a
// freshly registered attendee their badge.
type RegisterResult struct {
	Attendee        models.Attendee
	VerificationURL string
	QRPNG           []byte
}

// Register validates the request, issues a unique credential and persists
// the attendee exactly once. Attendees are write-once: there is no update
// path, by design.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if !req.FeeCategory.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown fee category: "+string(req.FeeCategory))
	}

	attendee := models.Attendee{
		ID:           uuid.NewString(),
		Name:         name,
		Organization: strings.TrimSpace(req.Organization),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		FeeCategory:  req.FeeCategory,
		DefaultVenue: strings.TrimSpace(req.DefaultVenue),
		RegisteredAt: time.Now().UTC(),
	}

	if err := s.createWithFreshToken(ctx, &attendee); err != nil {
		return nil, err
	}

	baseURL := strings.TrimSpace(req.BaseURL)
	if baseURL == "" {
		baseURL = s.baseURL
	}
	verificationURL, err := credential.Encode(baseURL, attendee.Token, attendee.DefaultVenue)
	if err != nil {
		return nil, err
	}
	qr, err := credential.QRPNG(verificationURL)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "render qr", err)
	}

	return &RegisterResult{
		Attendee:        attendee,
		VerificationURL: verificationURL,
		QRPNG:           qr,
	}, nil
}

// createWithFreshToken issues a credential and inserts the attendee,
// regenerating on collision up to the retry budget. The store's uniqueness
// check is the only collision authority; generation itself is pure.
func (s *Service) createWithFreshToken(ctx context.Context, attendee *models.Attendee) error {
	for attempt := 0; attempt < issueRetries; attempt++ {
		tok, err := s.issuer.Issue()
		if err != nil {
			return dErrors.Wrap(dErrors.CodeInternal, "issue credential", err)
		}
		attendee.Token = tok

		err = s.store.Create(ctx, *attendee)
		if err == nil {
			return nil
		}
		if errors.Is(err, sentinel.ErrConflict) {
			continue
		}
		return dErrors.Wrap(dErrors.CodeUnavailable, "create attendee", err)
	}
	return dErrors.New(dErrors.CodeCollision, "token generation collided repeatedly; check entropy source")
}

// FindByToken resolves a credential to its attendee.
func (s *Service) FindByToken(ctx context.Context, token string) (models.Attendee, error) {
	a, err := s.store.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Attendee{}, dErrors.New(dErrors.CodeNotFound, "no attendee for token")
		}
		return models.Attendee{}, dErrors.Wrap(dErrors.CodeUnavailable, "find attendee", err)
	}
	return a, nil
}

// List returns all registered attendees for reporting.
func (s *Service) List(ctx context.Context) ([]models.Attendee, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "list attendees", err)
	}
	return out, nil
}
