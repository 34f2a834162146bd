package handlers_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	internalhttp "github.com/spec-kit/hallticket-service/internal/api/http"
	"github.com/spec-kit/hallticket-service/internal/api/http/handlers"
	"github.com/spec-kit/hallticket-service/internal/domain"
	"github.com/spec-kit/hallticket-service/internal/observability"
	"github.com/spec-kit/hallticket-service/internal/otp"
	"github.com/spec-kit/hallticket-service/internal/payment"
	"github.com/spec-kit/hallticket-service/internal/service"
	"github.com/spec-kit/hallticket-service/internal/store"
)

const webhookSecret = "whsec_test"

type countingGenerator struct {
	mu    sync.Mutex
	calls int
}

func (g *countingGenerator) Generate(ctx context.Context, app *domain.Application) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return "/documents/" + app.TicketID + ".pdf", nil
}

type noopMailer struct{}

func (noopMailer) Send(to, subject, htmlBody string) error { return nil }

type unusedGateway struct{}

func (unusedGateway) CreatePaymentLink(ctx context.Context, req payment.IntentRequest) (*payment.PaymentLink, error) {
	return nil, fmt.Errorf("not expected in webhook tests")
}

func newWebhookTestApp(t *testing.T) (*fiber.App, *store.MemoryApplicationStore, *countingGenerator) {
	t.Helper()
	apps := store.NewMemoryApplicationStore()
	generator := &countingGenerator{}

	svc := service.NewApplicationService(service.ApplicationDependencies{
		Store:     apps,
		Verifier:  otp.NewVerifier(otp.NewMemoryChallengeStore(), 10*time.Minute, 4),
		Gateway:   unusedGateway{},
		Generator: generator,
		Mailer:    noopMailer{},
		Logger:    zap.NewNop(),
		Metrics:   observability.NewMetrics(),
	})

	app := fiber.New()
	internalhttp.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	handler := handlers.NewWebhookHandler(svc, webhookSecret, zap.NewNop())
	app.Post("/webhooks/payment", handler.HandlePaymentEvent)
	return app, apps, generator
}

func seedPending(t *testing.T, apps *store.MemoryApplicationStore, ticketID string) {
	t.Helper()
	require.NoError(t, apps.Create(context.Background(), &domain.Application{
		TicketID: ticketID,
		Name:     "A",
		Email:    "a@x.com",
		Phone:    "123",
		College:  "X",
		Course:   "CS",
		Status:   domain.StatusPending,
	}))
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func capturedBody(ticketID string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","notes":{"ticket_id":"%s"}}}}}`,
		ticketID,
	))
}

func postWebhook(t *testing.T, app *fiber.App, body []byte, signature string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(payment.SignatureHeader, signature)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	app, apps, generator := newWebhookTestApp(t)
	seedPending(t, apps, "HT123456")
	body := capturedBody("HT123456")

	resp := postWebhook(t, app, body, signBody(body, "wrong-secret"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postWebhook(t, app, body, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// no state change regardless of payload content
	record, err := apps.Get(context.Background(), "HT123456")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, record.Status)
	assert.Equal(t, 0, generator.calls)
}

func TestWebhookProcessesAuthenticatedEvent(t *testing.T) {
	app, apps, generator := newWebhookTestApp(t)
	seedPending(t, apps, "HT123456")
	body := capturedBody("HT123456")

	resp := postWebhook(t, app, body, signBody(body, webhookSecret))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	record, err := apps.Get(context.Background(), "HT123456")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, record.Status)
	assert.Equal(t, "/documents/HT123456.pdf", record.DocumentURL)
	assert.Equal(t, "pay_1", record.PaymentRef)
	assert.Equal(t, 1, generator.calls)
}

func TestWebhookReplayIsAcknowledgedWithoutSecondIssuance(t *testing.T) {
	app, apps, generator := newWebhookTestApp(t)
	seedPending(t, apps, "HT123456")
	body := capturedBody("HT123456")
	signature := signBody(body, webhookSecret)

	resp := postWebhook(t, app, body, signature)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = postWebhook(t, app, body, signature)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	record, err := apps.Get(context.Background(), "HT123456")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, record.Status)
	assert.Equal(t, 1, generator.calls)
}

func TestWebhookAcknowledgesUnknownEventKind(t *testing.T) {
	app, apps, generator := newWebhookTestApp(t)
	seedPending(t, apps, "HT123456")
	body := []byte(`{"event":"refund.created","payload":{}}`)

	resp := postWebhook(t, app, body, signBody(body, webhookSecret))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	record, err := apps.Get(context.Background(), "HT123456")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, record.Status)
	assert.Equal(t, 0, generator.calls)
}

func TestWebhookAcknowledgesUnparseableAuthenticatedBody(t *testing.T) {
	app, _, generator := newWebhookTestApp(t)
	body := []byte("not json")

	resp := postWebhook(t, app, body, signBody(body, webhookSecret))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, generator.calls)
}
