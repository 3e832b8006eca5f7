package middleware

import "github.com/gofiber/fiber/v2"

// ErrorPayload is the JSON body of every error response.
type ErrorPayload struct {
	RequestID string        `json:"request_id"`
	Error     ErrorEnvelope `json:"error"`
}

type ErrorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Details carries extra machine-readable fields, e.g. the blocked flags
	// of a refused login.
	Details map[string]any `json:"details,omitempty"`
}

// WriteError writes the standard error envelope. message must be safe to
// show to clients.
func WriteError(c *fiber.Ctx, status int, code, message string) error {
	return WriteErrorDetails(c, status, code, message, nil)
}

func WriteErrorDetails(c *fiber.Ctx, status int, code, message string, details map[string]any) error {
	return c.Status(status).JSON(ErrorPayload{
		RequestID: RequestIDFrom(c),
		Error: ErrorEnvelope{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
