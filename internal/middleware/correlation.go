package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

const correlationHeader = "X-Correlation-ID"

// CorrelationID threads a correlation ID through the request: the caller's
// X-Correlation-ID header is honored, otherwise a ULID is minted. The ID is
// stored on the user context for persistence-layer logging and echoed on the
// response. It is traceability only; requests are never correlated with each
// other.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(correlationHeader)
		if id == "" {
			id = domain.NewCorrelationID()
		}

		c.SetUserContext(domain.WithCorrelationID(c.UserContext(), id))
		c.Set(correlationHeader, id)

		return c.Next()
	}
}
