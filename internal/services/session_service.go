package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/solvetec-mx/gestion-sesiones/internal/config"
	"github.com/solvetec-mx/gestion-sesiones/internal/logging"
	"github.com/solvetec-mx/gestion-sesiones/internal/models"
	"gorm.io/gorm"
)

// SessionService owns the refresh-token rows: one row per login session,
// revocation is a flag update, rows are never deleted.
type SessionService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewSessionService(db *gorm.DB, cfg *config.Config) *SessionService {
	return &SessionService{db: db, cfg: cfg}
}

// Issue creates a session row for the user and returns the raw token. Only
// the SHA-256 hash is stored.
func (s *SessionService) Issue(username string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", NewValidationError("el nombre de usuario es requerido")
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		Username:  username,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		slog.Error("failed to store refresh token", "operation", "session issue", "username", logging.Sanitize(username), "error", err.Error())
		return "", &DataAccessError{Op: "session issue", Err: err}
	}

	return rawToken, nil
}

// Lookup returns the non-revoked session row matching the raw token.
func (s *SessionService) Lookup(rawToken string) (*models.RefreshToken, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, NewValidationError("el token de sesión es requerido")
	}

	var stored models.RefreshToken
	err := s.db.Where("token_hash = ? AND revoked = false", hashToken(rawToken)).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, &DataAccessError{Op: "session lookup", Err: err}
	}
	return &stored, nil
}

// Revoke marks the session invalid. Idempotent: revoking an already revoked
// or unknown token is not an error.
func (s *SessionService) Revoke(rawToken string) error {
	if strings.TrimSpace(rawToken) == "" {
		return NewValidationError("el token de sesión es requerido")
	}

	err := s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hashToken(rawToken)).
		Update("revoked", true).Error
	if err != nil {
		slog.Error("failed to revoke refresh token", "operation", "session revoke", "error", err.Error())
		return &DataAccessError{Op: "session revoke", Err: err}
	}
	return nil
}

// CountActive returns the point-in-time number of non-revoked sessions for
// the user. No locking across the read; concurrent issue/revoke may race.
func (s *SessionService) CountActive(username string) (int64, error) {
	if strings.TrimSpace(username) == "" {
		return 0, NewValidationError("el nombre de usuario es requerido")
	}

	var count int64
	err := s.db.Model(&models.RefreshToken{}).
		Where("username = ? AND revoked = false", username).
		Count(&count).Error
	if err != nil {
		slog.Error("failed to count active sessions", "operation", "session count", "username", logging.Sanitize(username), "error", err.Error())
		return 0, &DataAccessError{Op: "session count", Err: err}
	}
	return count, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
