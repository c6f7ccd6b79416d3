package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/rishabhcod/event-registration-system2/errors"
	"github.com/rishabhcod/event-registration-system2/service"
)

const (
	identityKey = "identity"
	AdminKey    = "admin"
)

// Authorize admits requests carrying a valid HS256 admin bearer token and stores the
// admin username under AdminKey.
func Authorize(auth *service.AuthService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    auth.SigningKey(),
		SigningMethod: "HS256",
		Claims:        &service.AdminClaims{},
		ContextKey:    identityKey,
		ErrorHandler:  jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(identityKey).(*jwt.Token)
			if !ok {
				return errors.RaisePermissionsError(c)
			}
			username, err := auth.Identity(token)
			if err != nil {
				return errors.RaisePermissionsError(c)
			}
			c.Locals(AdminKey, username)
			return c.Next()
		},
	})
}

// missing, malformed and expired tokens all get the same answer
func jwtError(c *fiber.Ctx, err error) error {
	return errors.RaisePermissionsError(c)
}
