package utils

import (
	"errors"
	"log"
	"time"

	"github.com/catnipgames/catpacks/internal/types"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends the standard error body: a human-readable error plus a
// stable machine-readable kind.
func ErrorResponse(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":     message,
		"kind":      kind,
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// DomainErrorResponse maps a service error onto the wire. Known domain
// errors keep their status and kind; anything else is a 500 store failure
// with the cause logged, not leaked.
func DomainErrorResponse(c *fiber.Ctx, err error, op string) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return ErrorResponse(c, ce.Code, ce.Kind, ce.Message)
	}

	log.Printf("%s failed: %v", op, err)
	return ErrorResponse(c, fiber.StatusInternalServerError, types.KindStoreFailure, "unexpected server error")
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Status    int    `json:"status"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}
