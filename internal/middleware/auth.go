package middleware

import (
	"context"
	"strings"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenCookie is the name of the session cookie carrying the JWT.
const AccessTokenCookie = "access_token"

// AuthRequired returns a middleware that enforces authentication. The
// credential is read from the access_token cookie, falling back to an
// Authorization: Bearer header. On success the authenticated identity is
// stored in Locals as "userID" (ObjectID hex) and "isAdmin".
func AuthRequired(secret string) fiber.Handler {
	secretBytes := []byte(secret)

	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(AccessTokenCookie)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("You are not authenticated"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secretBytes, nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token subject"))
		}
		isAdmin, _ := claims["isAdmin"].(bool)

		c.Locals("userID", sub)
		c.Locals("isAdmin", isAdmin)

		// Sync to UserContext so the context-aware logger sees the user.
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, sub))

		return c.Next()
	}
}

// AdminRequired only lets authenticated admins through. It must run after
// AuthRequired on the route.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, _ := c.Locals("isAdmin").(bool)
		if !isAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}
		return c.Next()
	}
}
