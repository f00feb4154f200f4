package models

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a row in the external credential store. This layer only ever
// reads it; account provisioning lives elsewhere.
type Credential struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username   string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	SecretHash string    `gorm:"not null" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
