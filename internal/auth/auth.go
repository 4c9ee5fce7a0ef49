package auth

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/Hende2/Biodevices-Back-End/internal/database"
	"github.com/Hende2/Biodevices-Back-End/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session has expired")
)

// SessionTTL is the lifetime of a session token. Overridden from
// config at startup.
var SessionTTL = 24 * time.Hour

// Register creates a new user with a hashed password and stores it.
func Register(name, email, password string) (*models.User, error) {
	user, err := models.NewUser(name, email, password)
	if err != nil {
		return nil, err
	}
	return database.CreateUser(user.Name, user.Email, user.Password)
}

// Authenticate verifies credentials against the stored hash. A missing
// user and a wrong password both return ErrInvalidCredentials so the
// caller cannot tell the two apart; storage failures pass through
// unchanged.
func Authenticate(email, password string) (*models.User, error) {
	user, err := database.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.ValidatePassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CreateSession issues a fresh opaque session token for a user and
// persists it.
func CreateSession(userID string) (string, error) {
	token, err := generateRandomToken()
	if err != nil {
		return "", err
	}

	if _, err := database.CreateSession(userID, token, time.Now().Add(SessionTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateSession resolves a session token to the owning user ID. An
// expired session is deleted on sight and reported the same way an
// unknown token would be.
func ValidateSession(token string) (string, error) {
	session, err := database.GetSessionByToken(token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	if session.Expired() {
		database.DeleteSession(token)
		return "", ErrSessionExpired
	}

	return session.UserID, nil
}

// DeleteSession removes a session token (logout).
func DeleteSession(token string) error {
	return database.DeleteSession(token)
}

// CleanupExpiredSessions removes expired session records.
func CleanupExpiredSessions() error {
	return database.CleanupExpiredSessions()
}

func generateRandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ValidateEmail checks if an email has a plausible shape.
func ValidateEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) bool {
	return len(password) >= 8
}
