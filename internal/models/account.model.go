package models

import (
	"strings"
	"time"
)

// Account is the login identity. Profiles, technician assignments and
// notification recipients all point at an account id.
type Account struct {
	BaseModel
	Username     string    `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	FirstName    string    `gorm:"type:varchar(150)"                      json:"first_name"`
	LastName     string    `gorm:"type:varchar(150)"                      json:"last_name"`
	Email        string    `gorm:"type:varchar(254)"                      json:"email"`
	PasswordHash string    `gorm:"type:text"                              json:"-"`
	IsActive     bool      `gorm:"type:bool;not null"                     json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime;<-:create"               json:"created_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// FullName falls back to the username when no name is recorded.
func (a *Account) FullName() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name == "" {
		return a.Username
	}
	return name
}

type AccountSummary struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (a *Account) ToSummary() AccountSummary {
	return AccountSummary{
		ID:        a.ID,
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
	}
}
