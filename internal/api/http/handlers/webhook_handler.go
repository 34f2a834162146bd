package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hallticket-service/internal/payment"
	"github.com/spec-kit/hallticket-service/internal/service"
	apperrors "github.com/spec-kit/hallticket-service/pkg/util/errorutil"
)

// WebhookHandler receives asynchronous payment events from the gateway.
type WebhookHandler struct {
	service *service.ApplicationService
	secret  string
	logger  *zap.Logger
}

// NewWebhookHandler constructs handler.
func NewWebhookHandler(applicationService *service.ApplicationService, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{service: applicationService, secret: secret, logger: logger}
}

// HandlePaymentEvent POST /webhooks/payment.
//
// The signature is checked over the exact raw body before the payload is
// parsed. Authentication failures are the only rejections that invite a
// gateway retry; every authenticated delivery is acknowledged even when
// processing fails internally, because the gateway cannot fix those.
func (h *WebhookHandler) HandlePaymentEvent(c *fiber.Ctx) error {
	body := c.Body()
	signature := c.Get(payment.SignatureHeader)

	if !payment.VerifySignature(body, signature, h.secret) {
		h.logger.Warn("rejected payment webhook with invalid signature")
		return apperrors.NewUnauthorized("invalid webhook signature")
	}

	event, err := payment.ParseEvent(body)
	if err != nil {
		h.logger.Warn("unparseable payment webhook", zap.Error(err))
		return c.JSON(fiber.Map{"status": "ignored"})
	}

	if err := h.service.HandlePaymentEvent(c.UserContext(), event); err != nil {
		h.logger.Error("payment event processing failed",
			zap.String("event", event.Kind),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
