package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LocalsUserID is the fiber.Locals key holding the authenticated user id.
const LocalsUserID = "user_id"

// BearerToken extracts the token from "Bearer <t>" or "JWT <t>" headers.
func BearerToken(authHeader string) (string, bool) {
	for _, scheme := range []string{"Bearer ", "JWT "} {
		if len(authHeader) > len(scheme) && strings.EqualFold(authHeader[:len(scheme)], scheme) {
			return strings.TrimSpace(authHeader[len(scheme):]), true
		}
	}
	return "", false
}

// OptionalJwtMiddleware sets the user id when a valid token is present.
// Invalid or expired tokens leave the request anonymous so a client
// holding a stale token can still log in or refresh; operations that need a
// user reject anonymous callers themselves.
func OptionalJwtMiddleware(issuer *TokenIssuer) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr, ok := BearerToken(ctx.Get("Authorization"))
		if !ok {
			return ctx.Next()
		}

		claims, err := issuer.Parse(tokenStr)
		if err != nil {
			return ctx.Next()
		}

		ctx.Locals(LocalsUserID, claims.UserId)
		return ctx.Next()
	}
}

// UserID returns the authenticated user id stored by the middleware.
func UserID(ctx *fiber.Ctx) (uint, bool) {
	id, ok := ctx.Locals(LocalsUserID).(uint)
	return id, ok && id != 0
}
