package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User roles. Everything that is not an admin is a regular customer.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// DefaultProfileImage is the placeholder every new account starts with.
// It is never removed from disk when a profile picture is replaced.
const DefaultProfileImage = "/profile.jpg"

// User is the model for the 'users' table.
type User struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"size:100;not null"`
	Email    string  `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password string  `json:"-" gorm:"size:255;not null"`
	Role     string  `json:"role" gorm:"size:20;not null;default:'USER'"`
	Image    *string `json:"image,omitempty" gorm:"size:255"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
