package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/hallticket-service/internal/events"
	"github.com/spec-kit/hallticket-service/internal/notify"
)

// NotificationService sends the document-ready mail when a hall ticket is
// issued. Dispatch failures are logged and never roll back the paid state;
// document issuance, not notification, is the consistency boundary.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     notify.Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer notify.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventApplicationCreated, n.handleApplicationCreated)
	n.dispatcher.Subscribe(events.EventDocumentIssued, n.handleDocumentIssued)
}

// handleApplicationCreated writes the audit record for a new application.
// Registration is the last point the applicant's intake details and payment
// link are seen together, so they are logged here rather than mailed.
func (n *NotificationService) handleApplicationCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for application created event", zap.String("ticket_id", event.TicketID))
		return nil
	}
	n.logger.Info("application created",
		zap.String("ticket_id", event.TicketID),
		zap.String("college", payload.College),
		zap.String("course", payload.Course),
		zap.String("status", string(payload.Status)),
		zap.String("payment_url", payload.PaymentURL),
	)
	return nil
}

func (n *NotificationService) handleDocumentIssued(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DocumentIssuedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for document issued event", zap.String("ticket_id", event.TicketID))
		return nil
	}
	body := notify.DocumentReadyBody(payload.Name, event.TicketID, payload.DocumentURL)
	if err := n.mailer.Send(payload.Email, notify.SubjectDocumentReady, body); err != nil {
		n.logger.Error("failed to send document ready mail",
			zap.String("ticket_id", event.TicketID),
			zap.String("email", payload.Email),
			zap.Error(err))
		return err
	}
	n.logger.Info("document ready mail sent", zap.String("ticket_id", event.TicketID))
	return nil
}
