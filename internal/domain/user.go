package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the safe projection of a User for tokens and responses.
// It never carries the password hash.
type Identity struct {
	ID    string
	Email string
	Role  string
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}
