package services

import (
	"errors"

	"github.com/solvetec-mx/gestion-sesiones/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CredentialStore is the external credential check. The contract is a single
// canonical boolean: unknown user and wrong secret both come back as
// (false, nil); only a storage failure is an error.
type CredentialStore interface {
	Authorize(username, secret string) (bool, error)
}

type GormCredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *GormCredentialStore {
	return &GormCredentialStore{db: db}
}

func (s *GormCredentialStore) Authorize(username, secret string) (bool, error) {
	var cred models.Credential
	err := s.db.Where("username = ?", username).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &DataAccessError{Op: "credential lookup", Err: err}
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.SecretHash), []byte(secret)) != nil {
		return false, nil
	}
	return true, nil
}
