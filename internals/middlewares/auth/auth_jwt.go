// file: internals/middlewares/auth/auth_jwt.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helper "schoolms_backend/internals/helpers"
)

type AuthJWTOpts struct {
	Secret string
	// RequiredRoles, when set, must intersect the token's "roles" claim.
	RequiredRoles []string
}

// AuthJWT guards a route group with a bearer token. Token issuance lives in an
// external identity service; this middleware only verifies and extracts claims.
func AuthJWT(opts AuthJWTOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
			return helper.JsonError(c, fiber.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimPrefix(raw, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(opts.Secret), nil
		})
		if err != nil || !token.Valid {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid or expired token")
		}

		if len(opts.RequiredRoles) > 0 && !hasAnyRole(claims, opts.RequiredRoles) {
			return helper.JsonError(c, fiber.StatusForbidden, "insufficient role")
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Locals("user_id", sub)
		}
		return c.Next()
	}
}

func hasAnyRole(claims jwt.MapClaims, required []string) bool {
	rawRoles, ok := claims["roles"].([]any)
	if !ok {
		return false
	}
	have := make(map[string]struct{}, len(rawRoles))
	for _, r := range rawRoles {
		if s, ok := r.(string); ok {
			have[s] = struct{}{}
		}
	}
	for _, want := range required {
		if _, ok := have[want]; ok {
			return true
		}
	}
	return false
}
