package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/worklog/internal/apperr"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// errBadRequest marks malformed query parameters and request bodies.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// statusFor maps an error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, errBadRequest):
		return fiber.StatusBadRequest, "bad_request"
	case errors.Is(err, apperr.ErrValidation):
		return fiber.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound, "not_found"
	case errors.Is(err, apperr.ErrConflict):
		return fiber.StatusConflict, "conflict"
	case errors.Is(err, apperr.ErrUnauthorized):
		return fiber.StatusUnauthorized, "unauthorized"
	case errors.As(err, &fe):
		return fe.Code, fiberErrorCode(fe.Code)
	default:
		return fiber.StatusInternalServerError, "internal_error"
	}
}

func fiberErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusMethodNotAllowed:
		return "method_not_allowed"
	case fiber.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case fiber.StatusBadRequest:
		return "bad_request"
	default:
		return "error"
	}
}

// errorHandler writes ErrorResponse bodies. Internal errors are logged and
// replaced by a generic message.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)

	message := publicMessage(err)
	if status >= fiber.StatusInternalServerError {
		s.deps.Logger.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "error", err)
		message = "internal server error"
	}

	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return c.Status(status).JSON(ErrorResponse{Error: code, Message: message})
}

// publicMessage strips the sentinel prefix from classified errors.
func publicMessage(err error) string {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	msg := err.Error()
	for _, kind := range []error{errBadRequest, apperr.ErrValidation, apperr.ErrNotFound, apperr.ErrConflict, apperr.ErrUnauthorized} {
		if errors.Is(err, kind) {
			if i := strings.Index(msg, kind.Error()+": "); i >= 0 {
				return msg[i+len(kind.Error())+2:]
			}
			return msg
		}
	}
	return msg
}
