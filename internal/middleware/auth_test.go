package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/solvetec-mx/gestion-sesiones/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func middlewareTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret",
		JWTIssuer:   "gestion-api",
		JWTAudience: "gestion-clients",
	}
}

func signToken(t *testing.T, secret, issuer, audience string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "alice",
		"jti": uuid.NewString(),
		"iss": issuer,
		"aud": audience,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func setupProtectedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protected", JWTProtected(cfg), func(c *fiber.Ctx) error {
		return c.SendString(Subject(c))
	})
	return app
}

func TestJWTProtected(t *testing.T) {
	cfg := middlewareTestConfig()

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{
			name:       "valid token",
			token:      signToken(t, cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, time.Hour),
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing token",
			token:      "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong signing key",
			token:      signToken(t, "other-secret", cfg.JWTIssuer, cfg.JWTAudience, time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong issuer",
			token:      signToken(t, cfg.JWTSecret, "someone-else", cfg.JWTAudience, time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong audience",
			token:      signToken(t, cfg.JWTSecret, cfg.JWTIssuer, "other-clients", time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			token:      signToken(t, cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, -time.Minute),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupProtectedApp(cfg)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
