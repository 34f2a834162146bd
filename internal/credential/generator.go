package credential

import (
	"context"
	"fmt"

	"github.com/spec-kit/hallticket-service/internal/domain"
)

// Document carries everything the renderer needs to draw a hall ticket.
type Document struct {
	TicketID string
	Name     string
	Email    string
	Phone    string
	College  string
	Course   string
	QRPNG    []byte
}

// Renderer draws a hall ticket into a byte artifact (PDF).
type Renderer interface {
	Render(doc Document) ([]byte, error)
}

// Encoder produces a QR PNG for the given content.
type Encoder interface {
	Encode(content string, size int) ([]byte, error)
}

// Storage persists an artifact under a name derived from the ticket id and
// returns its stable public URL.
type Storage interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// TokenSigner mints the verification token embedded in the QR URL.
type TokenSigner interface {
	Sign(ticketID string) (string, error)
}

const qrSizePixels = 200

// Generator produces the verifiable hall-ticket document for an application.
// Generation is deterministic in content for the same inputs; each call
// writes a fresh artifact. Any collaborator failure propagates so the caller
// never marks the application paid on a partial write.
type Generator struct {
	renderer      Renderer
	encoder       Encoder
	storage       Storage
	signer        TokenSigner
	publicBaseURL string
}

// NewGenerator wires the rendering collaborators.
func NewGenerator(renderer Renderer, encoder Encoder, storage Storage, signer TokenSigner, publicBaseURL string) *Generator {
	return &Generator{
		renderer:      renderer,
		encoder:       encoder,
		storage:       storage,
		signer:        signer,
		publicBaseURL: publicBaseURL,
	}
}

// Generate renders and stores the hall ticket, returning its public URL.
func (g *Generator) Generate(ctx context.Context, app *domain.Application) (string, error) {
	token, err := g.signer.Sign(app.TicketID)
	if err != nil {
		return "", fmt.Errorf("sign verification token: %w", err)
	}
	verificationURL := fmt.Sprintf("%s/verify-ticket/%s?token=%s", g.publicBaseURL, app.TicketID, token)

	qrPNG, err := g.encoder.Encode(verificationURL, qrSizePixels)
	if err != nil {
		return "", fmt.Errorf("encode verification qr: %w", err)
	}

	artifact, err := g.renderer.Render(Document{
		TicketID: app.TicketID,
		Name:     app.Name,
		Email:    app.Email,
		Phone:    app.Phone,
		College:  app.College,
		Course:   app.Course,
		QRPNG:    qrPNG,
	})
	if err != nil {
		return "", fmt.Errorf("render hall ticket: %w", err)
	}

	url, err := g.storage.Put(ctx, app.TicketID+".pdf", artifact)
	if err != nil {
		return "", fmt.Errorf("store hall ticket: %w", err)
	}
	return url, nil
}
