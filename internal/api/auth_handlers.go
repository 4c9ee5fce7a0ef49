package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Hende2/Biodevices-Back-End/internal/auth"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler verifies credentials and issues both a session cookie
// (browser client) and a bearer access token (programmatic clients).
func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := auth.Authenticate(creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("Error authenticating %s: %v", creds.Email, err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	sessionToken, err := auth.CreateSession(user.ID)
	if err != nil {
		log.Printf("Error creating session for %s: %v", user.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	accessToken, err := api.tokens.GenerateToken(user, auth.SessionTTL)
	if err != nil {
		log.Printf("Error generating access token for %s: %v", user.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(auth.SessionTTL),
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": accessToken,
		"user":  user,
	})
}

// LogoutHandler deletes the caller's session and clears the cookie.
func (api *Api) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		if err := auth.DeleteSession(cookie.Value); err != nil {
			log.Printf("Error deleting session: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
