package database

import (
	"time"

	"github.com/Hende2/Biodevices-Back-End/internal/models"
)

// CreateSession persists a new session token for a user
func CreateSession(userID, token string, expiresAt time.Time) (*models.Session, error) {
	session := &models.Session{
		ID:        GenerateID(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}

	_, err := dbConn.Exec(
		bind("INSERT INTO sessions (id, user_id, token, created_at, expires_at) VALUES (?, ?, ?, ?, ?)"),
		session.ID, session.UserID, session.Token, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetSessionByToken retrieves a session by its token
func GetSessionByToken(token string) (*models.Session, error) {
	session := &models.Session{}
	err := dbConn.QueryRow(
		bind("SELECT id, user_id, token, created_at, expires_at FROM sessions WHERE token = ?"),
		token,
	).Scan(&session.ID, &session.UserID, &session.Token, &session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes a session by token
func DeleteSession(token string) error {
	_, err := dbConn.Exec(bind("DELETE FROM sessions WHERE token = ?"), token)
	return err
}

// CleanupExpiredSessions removes every session past its expiry
func CleanupExpiredSessions() error {
	_, err := dbConn.Exec(bind("DELETE FROM sessions WHERE expires_at < ?"), time.Now())
	return err
}
