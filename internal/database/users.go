package database

import (
	"strconv"
	"strings"
	"time"

	"github.com/Hende2/Biodevices-Back-End/internal/models"
	"github.com/google/uuid"
)

// GenerateID returns a new record identifier. UUIDs work the same way
// under both drivers, so IDs are always assigned here rather than by
// the database.
func GenerateID() string {
	return uuid.NewString()
}

// bind rewrites ? placeholders to $1..$n for PostgreSQL.
func bind(query string) string {
	if dbType != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreateUser inserts a new user record. The password must already be a
// bcrypt hash.
func CreateUser(name, email, password string) (*models.User, error) {
	now := time.Now()
	user := &models.User{
		ID:        GenerateID(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := dbConn.Exec(
		bind("INSERT INTO users (id, name, email, password, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"),
		user.ID, user.Name, user.Email, user.Password, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := dbConn.QueryRow(
		bind("SELECT id, name, email, password, created_at, updated_at FROM users WHERE email = ?"),
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func GetUserByID(id string) (*models.User, error) {
	user := &models.User{}
	err := dbConn.QueryRow(
		bind("SELECT id, name, email, password, created_at, updated_at FROM users WHERE id = ?"),
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetAllUsers retrieves every user record
func GetAllUsers() ([]*models.User, error) {
	rows, err := dbConn.Query(
		"SELECT id, name, email, password, created_at, updated_at FROM users ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUserFields updates the supplied columns of a user record. Nil
// pointers leave the stored value untouched. Updating a nonexistent id
// is not an error, mirroring the loose semantics of the admin surface.
func UpdateUserFields(id string, name, email, password *string) error {
	set := []string{"updated_at = ?"}
	args := []interface{}{time.Now()}

	if name != nil {
		set = append(set, "name = ?")
		args = append(args, *name)
	}
	if email != nil {
		set = append(set, "email = ?")
		args = append(args, *email)
	}
	if password != nil {
		set = append(set, "password = ?")
		args = append(args, *password)
	}

	args = append(args, id)
	query := "UPDATE users SET " + strings.Join(set, ", ") + " WHERE id = ?"
	_, err := dbConn.Exec(bind(query), args...)
	return err
}

// DeleteUser removes a user record. Deleting a nonexistent id is a
// no-op, not an error.
func DeleteUser(id string) error {
	_, err := dbConn.Exec(bind("DELETE FROM users WHERE id = ?"), id)
	return err
}
