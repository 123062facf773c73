package domain

import (
	"net/mail"
	"strings"
	"time"
)

type User struct {
	ID           uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string        `json:"nombre" gorm:"size:120;not null"`
	Email        string        `json:"email" gorm:"size:160;uniqueIndex;not null"`
	PasswordHash string        `json:"-" gorm:"size:100;not null"`
	Role         Role          `json:"rol" gorm:"size:40;not null;index"`
	CategoryID   *uint64       `json:"categoria_id,omitempty" gorm:"index"`
	Status       CatalogStatus `json:"estado" gorm:"size:10;default:'activo'"`
	CreatedAt    time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string { return "usuarios" }

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return validation("nombre", "name is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return validation("email", "email is invalid")
	}
	if !u.Role.Valid() {
		return validation("rol", "unknown role %q", u.Role)
	}
	if u.CategoryID != nil && !u.Role.Station() {
		return validation("categoria_id", "only kitchen, bar and chef users take a category")
	}
	return nil
}

// Identity is what a session knows about the logged-in user.
type Identity struct {
	UserID     uint64  `json:"id"`
	Name       string  `json:"name"`
	Role       Role    `json:"role"`
	CategoryID *uint64 `json:"categoria_id,omitempty"`
}
