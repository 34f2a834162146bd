package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hallticket-service/internal/observability"
	apperrors "github.com/spec-kit/hallticket-service/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

// requestTimeoutMiddleware bounds each request. The budget must cover the
// slowest path, a webhook delivery that renders and stores the PDF inline.
func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware converts DomainErrors (and recovered panics) into
// the JSON error envelope. Upstream failures, the payment gateway or the
// SMTP relay refusing us, are logged at warn; they are not our fault to fix.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				}
				switch {
				case domainErr.HTTPStatus == fiber.StatusBadGateway:
					logger.Warn("upstream dependency failed",
						zap.String("path", c.Path()), zap.Error(domainErr))
				case domainErr.HTTPStatus >= 500:
					logger.Error("request failed",
						zap.String("path", c.Path()), zap.Error(domainErr))
				}
				err = writeDomainError(c, domainErr)
			}
		}()
		return c.Next()
	}
}

func writeDomainError(c *fiber.Ctx, domainErr *apperrors.DomainError) error {
	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": body})
}
