package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const ClientIDKey = "clientID"

// EnsureClientID tags the request with a client ID taken from the X-Client-ID
// header or the clientId query parameter, generating one when neither is set.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(ClientIDKey) != nil {
			return c.Next()
		}

		clientID := c.Get("X-Client-ID")
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			clientID = uuid.New().String()
		}

		c.Locals(ClientIDKey, clientID)
		c.Set("X-Client-ID", clientID)
		return c.Next()
	}
}
