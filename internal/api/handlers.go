package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Hende2/Biodevices-Back-End/internal/auth"
	"github.com/Hende2/Biodevices-Back-End/internal/database"
	"github.com/Hende2/Biodevices-Back-End/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UsersHandler is the administrative CRUD surface over user records.
// It dispatches on HTTP method; anything outside the supported set is
// rejected with 405 and the Allow header.
func (api *Api) UsersHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		api.listUsers(w, r)
	case http.MethodPost:
		api.createUser(w, r)
	case http.MethodPut:
		api.updateUser(w, r)
	case http.MethodDelete:
		api.deleteUser(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, PUT, DELETE")
		writeMessage(w, http.StatusMethodNotAllowed, "Method "+r.Method+" Not Allowed")
	}
}

func (api *Api) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := database.GetAllUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (api *Api) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if !auth.ValidateEmail(req.Email) {
		writeMessage(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if !auth.ValidatePassword(req.Password) {
		writeMessage(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	user, err := auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		log.Printf("Error creating user %s: %v", req.Email, err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

type updateUserRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (api *Api) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == "" {
		writeMessage(w, http.StatusBadRequest, "id is required")
		return
	}

	// Hash a replacement password before it touches storage
	password := req.Password
	if password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password for %s: %v", req.ID, err)
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		h := string(hashed)
		password = &h
	}

	if err := database.UpdateUserFields(req.ID, req.Name, req.Email, password); err != nil {
		log.Printf("Error updating user %s: %v", req.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	// Echo the submitted fields, not the post-update record. The
	// password is acknowledged but never returned.
	fields := map[string]interface{}{"id": req.ID}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	writeJSON(w, http.StatusOK, fields)
}

type deleteUserRequest struct {
	ID string `json:"id"`
}

func (api *Api) deleteUser(w http.ResponseWriter, r *http.Request) {
	var req deleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Idempotent: 204 whether or not a record matched
	if err := database.DeleteUser(req.ID); err != nil {
		log.Printf("Error deleting user %s: %v", req.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addReadingRequest struct {
	Location json.RawMessage `json:"location"`
	Value    json.RawMessage `json:"value"`
}

// AddReadingHandler accepts a new reading for the authenticated user.
// The session guard has already run; the method check comes next, then
// persistence. Order matters: an unauthenticated request must see 401
// even when its method is wrong.
func (api *Api) AddReadingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeMessage(w, http.StatusMethodNotAllowed, "Method "+r.Method+" Not Allowed")
		return
	}

	var req addReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reading := &models.Reading{UserID: userID}
	if err := parseLocation(req.Location, reading); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	value, err := parseValue(req.Value)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	reading.Value = value

	if _, err := database.InsertReading(reading); err != nil {
		log.Printf("Error adding reading for user %s: %v", userID, err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeMessage(w, http.StatusCreated, "Reading added successfully")
}

// ListReadingsHandler returns every stored reading, for the map view.
func (api *Api) ListReadingsHandler(w http.ResponseWriter, r *http.Request) {
	readings, err := database.GetAllReadings()
	if err != nil {
		log.Printf("Error listing readings: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

type coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// parseLocation accepts the two client shapes for location: a
// free-text string or a {lat, lng} coordinate pair.
func parseLocation(raw json.RawMessage, reading *models.Reading) error {
	if len(raw) == 0 {
		return errors.New("location is required")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if text == "" {
			return errors.New("location is required")
		}
		reading.Location = text
		return nil
	}

	var coords coordinates
	if err := json.Unmarshal(raw, &coords); err == nil && coords.Lat != nil && coords.Lng != nil {
		reading.Latitude = coords.Lat
		reading.Longitude = coords.Lng
		return nil
	}

	return errors.New("location must be a string or a {lat, lng} object")
}

// parseValue accepts a JSON number or a numeric string; the simple
// form client submits its value field as text.
func parseValue(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, errors.New("value is required")
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if num, err := strconv.ParseFloat(text, 64); err == nil {
			return num, nil
		}
	}

	return 0, errors.New("value must be numeric")
}
