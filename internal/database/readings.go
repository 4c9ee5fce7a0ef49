package database

import (
	"time"

	"github.com/Hende2/Biodevices-Back-End/internal/models"
)

// InsertReading stores a new reading. The ID and CreatedAt fields are
// assigned here; the caller supplies everything else. Readings are
// immutable once written, so this is the only write path.
func InsertReading(r *models.Reading) (*models.Reading, error) {
	r.ID = GenerateID()
	r.CreatedAt = time.Now()

	_, err := dbConn.Exec(
		bind("INSERT INTO readings (id, location, latitude, longitude, value, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"),
		r.ID, r.Location, r.Latitude, r.Longitude, r.Value, r.UserID, r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// GetAllReadings retrieves every stored reading, newest first
func GetAllReadings() ([]*models.Reading, error) {
	return queryReadings(
		"SELECT id, location, latitude, longitude, value, user_id, created_at FROM readings ORDER BY created_at DESC",
	)
}

// GetReadingsByUser retrieves the readings submitted by one user
func GetReadingsByUser(userID string) ([]*models.Reading, error) {
	return queryReadings(
		bind("SELECT id, location, latitude, longitude, value, user_id, created_at FROM readings WHERE user_id = ? ORDER BY created_at DESC"),
		userID,
	)
}

func queryReadings(query string, args ...interface{}) ([]*models.Reading, error) {
	rows, err := dbConn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := []*models.Reading{}
	for rows.Next() {
		r := &models.Reading{}
		if err := rows.Scan(&r.ID, &r.Location, &r.Latitude, &r.Longitude, &r.Value, &r.UserID, &r.CreatedAt); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}
