package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAgence      Role = "agence"
	RoleInterimaire Role = "interimaire"
	RoleClient      Role = "client"
)

type Profile struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	AgencyID     *uuid.UUID `json:"agencyId"`
	AgencyName   *string    `json:"agencyName,omitempty"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Phone        *string    `json:"phone,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	Version      int32      `json:"-"`
}

// FullName is the display name used in notifications.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
