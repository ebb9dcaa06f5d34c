// Package middleware contains the Fiber middleware for the service.
// Authentication here stops at token verification and user identification;
// fine-grained permissions are enforced upstream by the gateway.
package middleware

import (
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v3"

	basehdl "vidya_assessment/internal/api/base/handler"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/global"
)

// AuthMiddleware verifies the bearer token and stores the authenticated
// user id in c.Locals("user_id") for downstream handlers.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			basehdl.WriteResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, common.ErrTokenInvalid
			}
			return []byte(global.ServerConfig.JwtSecret), nil
		})
		if err != nil {
			if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
				basehdl.WriteResponse(c, nil, common.ErrTokenExpired)
				return nil
			}
			basehdl.WriteResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		if !token.Valid {
			basehdl.WriteResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}

		userID, _ := claims["sub"].(string)
		if userID == "" {
			// Some issuers put the platform user id in userId instead of sub
			userID, _ = claims["userId"].(string)
		}
		if userID == "" {
			basehdl.WriteResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

func extractToken(c fiber.Ctx) string {
	auth := c.Get("Authorization")
	if auth == "" {
		// Internal callers (queue consumers) use x-authenticated-token
		auth = c.Get("x-authenticated-token")
	}
	if auth == "" {
		return ""
	}
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return auth
}
