package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hallticket-service/internal/api/dto"
	"github.com/spec-kit/hallticket-service/internal/service"
	apperrors "github.com/spec-kit/hallticket-service/pkg/util/errorutil"
)

// ApplicationsHandler manages the applicant-facing intake endpoints.
type ApplicationsHandler struct {
	service  *service.ApplicationService
	validate *validator.Validate
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{
		service:  applicationService,
		validate: validator.New(),
	}
}

// SendCode POST /send-otp.
func (h *ApplicationsHandler) SendCode(c *fiber.Ctx) error {
	var req dto.SendCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("a valid email is required", nil)
	}

	if err := h.service.RequestCode(c.UserContext(), req.Email, req.Name); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "verification code sent to your email",
	})
}

// Register POST /verify-otp.
func (h *ApplicationsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("name, email, phone, college, course and a 6-digit otp are required", nil)
	}

	app, err := h.service.Register(c.UserContext(), service.RegisterInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		College: req.College,
		Course:  req.Course,
		Code:    req.OTP,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.RegisterResponse{
		TicketID:   app.TicketID,
		Status:     string(app.Status),
		PaymentURL: app.PaymentURL,
	}})
}

// Status GET /status/:ticketID.
func (h *ApplicationsHandler) Status(c *fiber.Ctx) error {
	result, err := h.service.Status(c.UserContext(), c.Params("ticketID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatusResponse{
		TicketID:    result.TicketID,
		Status:      string(result.Status),
		DocumentURL: result.DocumentURL,
	}})
}
