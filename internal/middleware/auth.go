package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/solvetec-mx/gestion-sesiones/internal/config"
	"github.com/solvetec-mx/gestion-sesiones/internal/dto"
)

// JWTProtected validates the bearer token signature and expiry, then checks
// the issuer and audience against the process configuration.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return unauthorized(c)
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c)
			}

			issuer, err := claims.GetIssuer()
			if err != nil || issuer != cfg.JWTIssuer {
				return unauthorized(c)
			}

			audience, err := claims.GetAudience()
			if err != nil || !containsAudience(audience, cfg.JWTAudience) {
				return unauthorized(c)
			}

			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

// Subject extracts the authenticated username from the validated token.
func Subject(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Message: "No autorizado: token inválido o expirado.",
	})
}

func containsAudience(audience jwt.ClaimStrings, expected string) bool {
	for _, a := range audience {
		if a == expected {
			return true
		}
	}
	return false
}
