package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hallticket-service/internal/verify"
)

// VerifyHandler serves the public hall-ticket verification page. The page
// asserts that the identifier has the issued format; when the QR-embedded
// token is supplied it additionally checks the token signature. It does not
// consult payment status.
type VerifyHandler struct {
	signer *verify.TokenSigner
}

// NewVerifyHandler constructs handler.
func NewVerifyHandler(signer *verify.TokenSigner) *VerifyHandler {
	return &VerifyHandler{signer: signer}
}

// VerifyTicket GET /verify-ticket/:id.
func (h *VerifyHandler) VerifyTicket(c *fiber.Ctx) error {
	id := c.Params("id")
	c.Type("html")

	if !verify.ValidTicketID(id) {
		c.Status(fiber.StatusNotFound)
		return c.SendString(verificationPage(id, "This Hall Ticket ID is <b>not valid</b>."))
	}

	if token := c.Query("token"); token != "" {
		boundID, err := h.signer.Verify(token)
		if err != nil || boundID != id {
			c.Status(fiber.StatusBadRequest)
			return c.SendString(verificationPage(id, "The verification token does <b>not</b> match this Hall Ticket."))
		}
	}

	return c.SendString(verificationPage(id,
		"This Hall Ticket is <b>valid</b> and issued by Documount Technologies Pvt Ltd.<br>"+
			"Please verify the student's ID proof at the examination center."))
}

func verificationPage(id, message string) string {
	return fmt.Sprintf(`<html>
  <head>
    <title>Verify Hall Ticket</title>
    <style>
      body { font-family: Arial; background:#f2f2f2; padding:40px; }
      .card { background:white; padding:30px; border-radius:8px; max-width:600px; margin:auto;
              box-shadow:0 0 10px rgba(0,0,0,0.1); }
      h2 { color:#003366; }
    </style>
  </head>
  <body>
    <div class="card">
      <h2>Documount Scholarship Program - Hall Ticket Verification</h2>
      <p><b>Hall Ticket ID:</b> %s</p>
      <p>%s</p>
      <p><i>Issued under Industry-Integrated Scholarship Program, Hyderabad.</i></p>
    </div>
  </body>
</html>`, id, message)
}
