package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a user account in the database
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser creates a user with a hashed password. The plaintext is never
// stored anywhere.
func NewUser(name, email, password string) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidatePassword checks a plaintext password against the stored hash.
func (u *User) ValidatePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// Session represents a user's session
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the session is past its expiry time.
func (s *Session) Expired() bool {
	return s.ExpiresAt.Before(time.Now())
}

// Reading is a single geolocated measurement submitted by a device or
// the web form. Clients send either a free-text location or a
// latitude/longitude pair; both shapes are kept.
type Reading struct {
	ID        string   `json:"id" db:"id"`
	Location  string   `json:"location,omitempty" db:"location"`
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
	Value     float64  `json:"value" db:"value"`
	// UserID is the submitting account, taken from the session and
	// never from the request body.
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
