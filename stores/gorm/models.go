//go:build !wasm
// +build !wasm

package gorm

import (
	"time"

	gh "github.com/gatehouse/gatehouse"
)

// UserModel is the GORM model for users.
//
// Username holds the name exactly as submitted at sign-up.  UsernameKey is
// the lowercased reservation key; the unique index lives there, which is what
// makes uniqueness case-insensitive regardless of the database's collation.
type UserModel struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"not null"`
	UsernameKey  string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (UserModel) TableName() string {
	return "gatehouse_users"
}

func (m *UserModel) ToUser() *gh.User {
	return &gh.User{
		Id:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}
