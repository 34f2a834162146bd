package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hallticket-service/internal/domain"
	"github.com/spec-kit/hallticket-service/internal/events"
	"github.com/spec-kit/hallticket-service/internal/notify"
	"github.com/spec-kit/hallticket-service/internal/observability"
	"github.com/spec-kit/hallticket-service/internal/payment"
	"github.com/spec-kit/hallticket-service/internal/store"
	apperrors "github.com/spec-kit/hallticket-service/pkg/util/errorutil"
)

// CodeVerifier issues and checks one-time codes keyed by email.
type CodeVerifier interface {
	Issue(ctx context.Context, email string) (string, error)
	Check(ctx context.Context, email, submitted string) (bool, error)
}

// DocumentGenerator produces the hall-ticket artifact and returns its URL.
type DocumentGenerator interface {
	Generate(ctx context.Context, app *domain.Application) (string, error)
}

// ApplicationService owns application records and drives every lifecycle
// transition: code issuance, verification into a pending record with a
// payment link, the webhook-triggered pending->paid transition, status
// queries and best-effort eviction of paid records.
type ApplicationService struct {
	apps       store.ApplicationStore
	verifier   CodeVerifier
	gateway    payment.Gateway
	generator  DocumentGenerator
	mailer     notify.Mailer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics

	amountPaise int64
	currency    string
	evictAfter  time.Duration

	evictMu        sync.Mutex
	evictScheduled map[string]struct{}
}

// ApplicationDependencies bundles collaborators for the service.
type ApplicationDependencies struct {
	Store      store.ApplicationStore
	Verifier   CodeVerifier
	Gateway    payment.Gateway
	Generator  DocumentGenerator
	Mailer     notify.Mailer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics

	AmountPaise int64
	Currency    string
	EvictAfter  time.Duration
}

// RegisterInput describes the verified application payload.
type RegisterInput struct {
	Name    string
	Email   string
	Phone   string
	College string
	Course  string
	Code    string
}

// StatusResult is the read model for the status page. The PROCESSING marker
// is reported as pending; it is not user-visible.
type StatusResult struct {
	TicketID    string
	Status      domain.ApplicationStatus
	DocumentURL string
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		apps:           deps.Store,
		verifier:       deps.Verifier,
		gateway:        deps.Gateway,
		generator:      deps.Generator,
		mailer:         deps.Mailer,
		dispatcher:     deps.Dispatcher,
		logger:         deps.Logger,
		metrics:        deps.Metrics,
		amountPaise:    deps.AmountPaise,
		currency:       deps.Currency,
		evictAfter:     deps.EvictAfter,
		evictScheduled: make(map[string]struct{}),
	}
}

// RequestCode issues a one-time code for the email and dispatches it. The
// mail greets the applicant by the optional display name, falling back to
// the address. A dispatch failure is surfaced to the caller because the
// applicant cannot proceed without the code.
func (s *ApplicationService) RequestCode(ctx context.Context, email, name string) error {
	code, err := s.verifier.Issue(ctx, email)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	displayName := strings.TrimSpace(name)
	if displayName == "" {
		displayName = email
	}
	if err := s.mailer.Send(email, notify.SubjectCodeIssued, notify.CodeIssuedBody(displayName, code)); err != nil {
		s.logger.Error("failed to send verification code", zap.String("email", email), zap.Error(err))
		return apperrors.NewUpstreamError("could not send verification code", err)
	}
	return nil
}

// Register consumes the verification challenge and, on success, creates a
// pending application with a hosted payment link. If the gateway call fails
// the record is rolled back and the failure reported to the caller.
func (s *ApplicationService) Register(ctx context.Context, input RegisterInput) (*domain.Application, error) {
	ok, err := s.verifier.Check(ctx, input.Email, strings.TrimSpace(input.Code))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !ok {
		return nil, apperrors.NewValidationError("invalid or expired verification code", nil)
	}

	app, err := s.createWithFreshTicketID(ctx, input)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	link, err := s.gateway.CreatePaymentLink(ctx, payment.IntentRequest{
		TicketID:    app.TicketID,
		AmountPaise: s.amountPaise,
		Currency:    s.currency,
		Description: "Documount Scholarship Program application fee",
		Name:        app.Name,
		Email:       app.Email,
		Phone:       app.Phone,
	})
	if err != nil {
		if delErr := s.apps.Delete(ctx, app.TicketID); delErr != nil {
			s.logger.Error("failed to roll back application after gateway failure",
				zap.String("ticket_id", app.TicketID), zap.Error(delErr))
		}
		s.logger.Error("payment link creation failed", zap.String("ticket_id", app.TicketID), zap.Error(err))
		return nil, apperrors.NewUpstreamError("payment gateway unavailable", err)
	}

	if err := s.apps.SetPaymentURL(ctx, app.TicketID, link.URL); err != nil {
		s.logger.Warn("failed to record payment url", zap.String("ticket_id", app.TicketID), zap.Error(err))
	}
	app.PaymentURL = link.URL

	s.publishEvent(ctx, events.Event{
		Type:     events.EventApplicationCreated,
		TicketID: app.TicketID,
		Payload: events.ApplicationCreatedPayload{
			Email:      app.Email,
			College:    app.College,
			Course:     app.Course,
			Status:     app.Status,
			PaymentURL: app.PaymentURL,
		},
	})
	return app, nil
}

// HandlePaymentEvent applies one authenticated gateway event to the state
// machine. Replayed or unknown deliveries resolve to a no-op success so the
// gateway's at-least-once delivery collapses to at-most-once side effects.
// Only a generator failure returns an error, leaving the record pending for
// the next delivery to retry.
func (s *ApplicationService) HandlePaymentEvent(ctx context.Context, event *payment.Event) error {
	s.metrics.RecordWebhookEvent(event.Kind)

	if !event.Captures() {
		s.logger.Info("ignoring webhook event", zap.String("event", event.Kind))
		return nil
	}
	if event.TicketID == "" {
		s.logger.Warn("payment event without ticket id", zap.String("event", event.Kind))
		return nil
	}

	app, err := s.apps.Get(ctx, event.TicketID)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Info("payment event for unknown ticket", zap.String("ticket_id", event.TicketID))
		return nil
	}
	if err != nil {
		return err
	}
	if app.Status == domain.StatusPaid {
		s.logger.Info("duplicate payment event ignored", zap.String("ticket_id", event.TicketID))
		return nil
	}

	// Claim the transition. A concurrent delivery that lost the swap (or a
	// delivery racing a render already in flight) is treated as a replay.
	claimed, err := s.apps.CompareAndSwapStatus(ctx, event.TicketID, domain.StatusPending, domain.StatusProcessing)
	if err != nil {
		return err
	}
	if !claimed {
		s.logger.Info("payment event lost transition race", zap.String("ticket_id", event.TicketID))
		return nil
	}

	documentURL, err := s.generator.Generate(ctx, app)
	if err != nil {
		if _, releaseErr := s.apps.CompareAndSwapStatus(ctx, event.TicketID, domain.StatusProcessing, domain.StatusPending); releaseErr != nil {
			s.logger.Error("failed to release processing marker",
				zap.String("ticket_id", event.TicketID), zap.Error(releaseErr))
		}
		s.logger.Error("hall ticket generation failed", zap.String("ticket_id", event.TicketID), zap.Error(err))
		return fmt.Errorf("generate hall ticket for %s: %w", event.TicketID, err)
	}

	if err := s.apps.MarkPaid(ctx, event.TicketID, documentURL, event.PaymentRef); err != nil {
		// Release the marker so the next delivery can retry; leaving the
		// record PROCESSING would wedge it, since every replay loses the
		// pending->processing swap and is acked as a no-op. Regeneration
		// is idempotent in content, so re-rendering on retry is safe.
		if _, releaseErr := s.apps.CompareAndSwapStatus(ctx, event.TicketID, domain.StatusProcessing, domain.StatusPending); releaseErr != nil {
			s.logger.Error("failed to release processing marker",
				zap.String("ticket_id", event.TicketID), zap.Error(releaseErr))
		}
		s.logger.Error("failed to finalize paid status", zap.String("ticket_id", event.TicketID), zap.Error(err))
		return err
	}
	s.metrics.RecordTicketIssued()
	s.logger.Info("hall ticket issued",
		zap.String("ticket_id", event.TicketID),
		zap.String("document_url", documentURL),
		zap.String("payment_ref", event.PaymentRef))

	s.publishEvent(ctx, events.Event{
		Type:     events.EventDocumentIssued,
		TicketID: event.TicketID,
		Payload: events.DocumentIssuedPayload{
			Name:        app.Name,
			Email:       app.Email,
			DocumentURL: documentURL,
			PaymentRef:  event.PaymentRef,
		},
	})
	return nil
}

// Status returns the read model for a ticket id. The first observation of a
// paid record schedules its eviction; purely memory reclamation.
func (s *ApplicationService) Status(ctx context.Context, ticketID string) (*StatusResult, error) {
	app, err := s.apps.Get(ctx, ticketID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NewNotFound("application", map[string]any{"ticket_id": ticketID})
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	result := &StatusResult{TicketID: app.TicketID, Status: app.Status}
	switch app.Status {
	case domain.StatusProcessing:
		result.Status = domain.StatusPending
	case domain.StatusPaid:
		result.DocumentURL = app.DocumentURL
		s.scheduleEviction(app.TicketID)
	}
	return result, nil
}

func (s *ApplicationService) createWithFreshTicketID(ctx context.Context, input RegisterInput) (*domain.Application, error) {
	const maxAttempts = 5
	for attempt := 0; attempt < maxAttempts; attempt++ {
		ticketID, err := newTicketID()
		if err != nil {
			return nil, err
		}
		app := &domain.Application{
			TicketID: ticketID,
			Name:     strings.TrimSpace(input.Name),
			Email:    strings.TrimSpace(input.Email),
			Phone:    strings.TrimSpace(input.Phone),
			College:  strings.TrimSpace(input.College),
			Course:   strings.TrimSpace(input.Course),
			Status:   domain.StatusPending,
		}
		err = s.apps.Create(ctx, app)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return app, nil
	}
	return nil, fmt.Errorf("could not allocate a unique ticket id after %d attempts", maxAttempts)
}

func (s *ApplicationService) scheduleEviction(ticketID string) {
	if s.evictAfter <= 0 {
		return
	}
	s.evictMu.Lock()
	if _, scheduled := s.evictScheduled[ticketID]; scheduled {
		s.evictMu.Unlock()
		return
	}
	s.evictScheduled[ticketID] = struct{}{}
	s.evictMu.Unlock()

	time.AfterFunc(s.evictAfter, func() {
		if err := s.apps.Delete(context.Background(), ticketID); err != nil {
			s.logger.Warn("eviction failed", zap.String("ticket_id", ticketID), zap.Error(err))
		} else {
			s.logger.Info("evicted paid application", zap.String("ticket_id", ticketID))
		}
		s.evictMu.Lock()
		delete(s.evictScheduled, ticketID)
		s.evictMu.Unlock()
	})
}

func (s *ApplicationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func newTicketID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("HT%06d", n.Int64()), nil
}
