package dto

// SendCodeRequest is the code-issuance payload.
type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// RegisterRequest is the code-verification + application payload.
type RegisterRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	College string `json:"college" validate:"required"`
	Course  string `json:"course" validate:"required"`
	OTP     string `json:"otp" validate:"required,len=6,numeric"`
}

// RegisterResponse returns the pending ticket and where to pay.
type RegisterResponse struct {
	TicketID   string `json:"ticket_id"`
	Status     string `json:"status"`
	PaymentURL string `json:"payment_url"`
}

// StatusResponse is the status page read model.
type StatusResponse struct {
	TicketID    string `json:"ticket_id"`
	Status      string `json:"status"`
	DocumentURL string `json:"document_url,omitempty"`
}
