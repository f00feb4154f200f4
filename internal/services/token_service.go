package services

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/solvetec-mx/gestion-sesiones/internal/config"
	"github.com/solvetec-mx/gestion-sesiones/internal/models"
)

// RefreshSessions is what the token issuer needs from the session store.
type RefreshSessions interface {
	Issue(username string) (string, error)
	Lookup(rawToken string) (*models.RefreshToken, error)
	Revoke(rawToken string) error
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService verifies credentials and issues signed access tokens paired
// with a tracked refresh session.
type TokenService struct {
	creds    CredentialStore
	sessions RefreshSessions
	cfg      *config.Config
}

func NewTokenService(creds CredentialStore, sessions RefreshSessions, cfg *config.Config) *TokenService {
	return &TokenService{creds: creds, sessions: sessions, cfg: cfg}
}

// Login checks the credentials against the store and, when authorized,
// returns a fresh token pair. Blank input is rejected before the store is
// contacted.
func (s *TokenService) Login(username, secret string) (*TokenPair, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(secret) == "" {
		return nil, NewValidationError("usuario y contraseña son requeridos")
	}

	authorized, err := s.creds.Authorize(username, secret)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, ErrInvalidCredentials
	}

	return s.issuePair(username)
}

// Refresh rotates a session: the presented token is revoked and a new pair
// is issued for its user.
func (s *TokenService) Refresh(rawToken string) (*TokenPair, error) {
	stored, err := s.sessions.Lookup(rawToken)
	if err != nil {
		return nil, err
	}

	if time.Now().After(stored.ExpiresAt) {
		if err := s.sessions.Revoke(rawToken); err != nil {
			return nil, err
		}
		return nil, ErrInvalidToken
	}

	if err := s.sessions.Revoke(rawToken); err != nil {
		return nil, err
	}

	return s.issuePair(stored.Username)
}

func (s *TokenService) issuePair(username string) (*TokenPair, error) {
	accessToken, err := s.signAccessToken(username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sessions.Issue(username)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *TokenService) signAccessToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"jti": uuid.NewString(),
		"iss": s.cfg.JWTIssuer,
		"aud": s.cfg.JWTAudience,
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
