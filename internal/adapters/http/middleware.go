package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/ctxutil"
	"github.com/example/worklog/internal/ports/primary"
)

// ownerLocalsKey stores the authenticated user ID in fiber locals.
const ownerLocalsKey = "owner_id"

// requestLogger logs one record per request and threads the request ID into
// the user context so service logs carry it too.
func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.GetRespHeader(fiber.HeaderXRequestID)
		c.SetUserContext(ctxutil.WithRequestID(c.UserContext(), reqID))

		err := c.Next()
		if err != nil {
			// Let the error handler write the response so the status is final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.UserContext(), level, "http request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
		)
		return nil
	}
}

// authMiddleware requires a valid bearer token and stores the owner ID.
func authMiddleware(auth primary.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return apperr.Unauthorized("not authenticated")
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			return apperr.Unauthorized("invalid authorization header format, use: Bearer <token>")
		}

		ownerID, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			return err
		}

		c.Locals(ownerLocalsKey, ownerID)
		c.SetUserContext(ctxutil.WithOwnerID(c.UserContext(), ownerID))
		return c.Next()
	}
}

// ownerID returns the user ID set by authMiddleware.
func ownerID(c *fiber.Ctx) string {
	id, _ := c.Locals(ownerLocalsKey).(string)
	return id
}
