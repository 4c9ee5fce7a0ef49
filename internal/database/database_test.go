package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Hende2/Biodevices-Back-End/internal/config"
	"github.com/Hende2/Biodevices-Back-End/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// DatabaseTestSuite defines the test suite
type DatabaseTestSuite struct {
	suite.Suite
	dbType string
}

// SetupTest initializes the database for each test
func (s *DatabaseTestSuite) SetupTest() {
	var cfg *config.Config

	// DB_TYPE=postgres runs the suite against a local PostgreSQL
	s.dbType = os.Getenv("DB_TYPE")
	if s.dbType == "postgres" {
		cfg = &config.Config{
			DatabaseType:     "postgres",
			DatabaseHost:     "localhost",
			DatabasePort:     "5433",
			DatabaseName:     "biodevices_test",
			DatabaseUser:     "biodevices_test",
			DatabasePassword: "testpassword",
			DatabaseSSLMode:  "disable",
		}
	} else {
		s.dbType = "sqlite"
		cfg = &config.Config{
			DatabaseType: "sqlite",
			DatabasePath: filepath.Join(s.T().TempDir(), "test_biodevices.db"),
		}
	}

	err := Init(cfg)
	assert.NoError(s.T(), err, "Database initialization should succeed")
}

// TearDownTest cleans up the database after each test
func (s *DatabaseTestSuite) TearDownTest() {
	if s.dbType == "postgres" {
		dbConn.Exec("DROP TABLE IF EXISTS readings, sessions, users, schema_migrations CASCADE")
	}
	Close()
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}

func (s *DatabaseTestSuite) TestCreateAndGetUser() {
	user, err := CreateUser("Ann", "ann@example.com", "hashed-password")
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), user)
	assert.NotEmpty(s.T(), user.ID)
	assert.Equal(s.T(), "ann@example.com", user.Email)

	retrieved, err := GetUserByEmail("ann@example.com")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, retrieved.ID)
	assert.Equal(s.T(), "Ann", retrieved.Name)

	byID, err := GetUserByID(user.ID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, byID.ID)
}

func (s *DatabaseTestSuite) TestEmailUniqueness() {
	_, err := CreateUser("Ann", "dup@example.com", "hash")
	assert.NoError(s.T(), err)

	_, err = CreateUser("Other Ann", "dup@example.com", "hash")
	assert.Error(s.T(), err, "duplicate email should violate the unique constraint")
}

func (s *DatabaseTestSuite) TestGetAllUsers() {
	users, err := GetAllUsers()
	assert.NoError(s.T(), err)
	assert.Empty(s.T(), users)

	CreateUser("A", "a@example.com", "hash")
	CreateUser("B", "b@example.com", "hash")

	users, err = GetAllUsers()
	assert.NoError(s.T(), err)
	assert.Len(s.T(), users, 2)
}

func (s *DatabaseTestSuite) TestUpdateUserFields() {
	user, _ := CreateUser("Old Name", "update@example.com", "hash")

	newName := "New Name"
	err := UpdateUserFields(user.ID, &newName, nil, nil)
	assert.NoError(s.T(), err)

	updated, err := GetUserByID(user.ID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "New Name", updated.Name)
	assert.Equal(s.T(), "update@example.com", updated.Email, "untouched fields keep their value")

	// Updating an unknown id is not an error
	err = UpdateUserFields("no-such-id", &newName, nil, nil)
	assert.NoError(s.T(), err)
}

func (s *DatabaseTestSuite) TestDeleteUser() {
	user, _ := CreateUser("Doomed", "doomed@example.com", "hash")

	err := DeleteUser(user.ID)
	assert.NoError(s.T(), err)

	_, err = GetUserByID(user.ID)
	assert.Error(s.T(), err)

	// Idempotent: deleting again is fine
	err = DeleteUser(user.ID)
	assert.NoError(s.T(), err)
}

func (s *DatabaseTestSuite) TestCreateAndGetSession() {
	user, _ := CreateUser("Sess", "session@example.com", "hash")

	expiresAt := time.Now().Add(24 * time.Hour)
	session, err := CreateSession(user.ID, "test-session-token", expiresAt)
	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), session.ID)

	retrieved, err := GetSessionByToken("test-session-token")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), session.ID, retrieved.ID)
	assert.Equal(s.T(), user.ID, retrieved.UserID)
}

func (s *DatabaseTestSuite) TestDeleteSession() {
	user, _ := CreateUser("Sess2", "delsession@example.com", "hash")
	CreateSession(user.ID, "session-to-delete", time.Now().Add(1*time.Hour))

	err := DeleteSession("session-to-delete")
	assert.NoError(s.T(), err)

	_, err = GetSessionByToken("session-to-delete")
	assert.Error(s.T(), err)
}

func (s *DatabaseTestSuite) TestCleanupExpiredSessions() {
	user, _ := CreateUser("Exp", "expuser@example.com", "hash")
	CreateSession(user.ID, "expired-session", time.Now().Add(-1*time.Hour))
	CreateSession(user.ID, "valid-session", time.Now().Add(1*time.Hour))

	err := CleanupExpiredSessions()
	assert.NoError(s.T(), err)

	_, err = GetSessionByToken("expired-session")
	assert.Error(s.T(), err)

	valid, err := GetSessionByToken("valid-session")
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), valid)
}

func (s *DatabaseTestSuite) TestInsertAndListReadings() {
	user, _ := CreateUser("Reader", "reader@example.com", "hash")

	lat, lng := 51.5, -0.12
	reading, err := InsertReading(&models.Reading{
		Latitude:  &lat,
		Longitude: &lng,
		Value:     42,
		UserID:    user.ID,
	})
	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), reading.ID)
	assert.WithinDuration(s.T(), time.Now(), reading.CreatedAt, 5*time.Second)

	readings, err := GetAllReadings()
	assert.NoError(s.T(), err)
	assert.Len(s.T(), readings, 1)
	assert.Equal(s.T(), user.ID, readings[0].UserID)
	assert.NotNil(s.T(), readings[0].Latitude)
	assert.Equal(s.T(), 51.5, *readings[0].Latitude)
	assert.Equal(s.T(), float64(42), readings[0].Value)
}

func (s *DatabaseTestSuite) TestFreeTextLocationReading() {
	user, _ := CreateUser("Texter", "texter@example.com", "hash")

	reading, err := InsertReading(&models.Reading{
		Location: "river bank near the bridge",
		Value:    7.5,
		UserID:   user.ID,
	})
	assert.NoError(s.T(), err)

	readings, err := GetAllReadings()
	assert.NoError(s.T(), err)
	assert.Len(s.T(), readings, 1)
	assert.Equal(s.T(), reading.Location, readings[0].Location)
	assert.Nil(s.T(), readings[0].Latitude)
	assert.Nil(s.T(), readings[0].Longitude)
}

func (s *DatabaseTestSuite) TestGetReadingsByUser() {
	ann, _ := CreateUser("Ann", "ann2@example.com", "hash")
	bob, _ := CreateUser("Bob", "bob@example.com", "hash")

	InsertReading(&models.Reading{Location: "a", Value: 1, UserID: ann.ID})
	InsertReading(&models.Reading{Location: "b", Value: 2, UserID: bob.ID})
	InsertReading(&models.Reading{Location: "c", Value: 3, UserID: ann.ID})

	mine, err := GetReadingsByUser(ann.ID)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), mine, 2)
	for _, r := range mine {
		assert.Equal(s.T(), ann.ID, r.UserID)
	}
}
