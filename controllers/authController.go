package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"plantshop/models"
	"plantshop/stores"
	"plantshop/utils"
)

var (
	sessions *stores.Manager
	domain   string
)

// SessionCookie carries the browser session id.
const SessionCookie = "psid"

// Setup wires the controllers to the session manager and the cookie domain.
func Setup(m *stores.Manager, host string) {
	sessions = m
	domain = host
}

// currentSession resolves the browser session from the psid cookie, creating
// a fresh session (and setting the cookie) on first contact.
func currentSession(w http.ResponseWriter, r *http.Request) *stores.Session {
	cookie, err := r.Cookie(SessionCookie)
	if err == nil && cookie.Value != "" {
		return sessions.GetOrCreate(cookie.Value)
	}

	s := sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
	})
	return s
}

type loginRequest struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Login mirrors a successful remote authentication into the session: state,
// local storage keys and the role's token cookie.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid login payload")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	s := currentSession(w, r)

	// Set the role's credential cookie the way the deployed UI does
	if req.Token != "" {
		name := "token"
		switch req.User.Role {
		case models.RoleAdmin:
			name = "admin_token"
		case models.RoleVendor:
			name = "vendor_token"
		}
		http.SetCookie(w, &http.Cookie{
			Name:  name,
			Value: req.Token,
			Path:  "/",
		})
	}

	s.Auth.Login(req.User, req.Token)

	user, authenticated := s.Auth.Snapshot()
	utils.SendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"user":            user,
		"isAuthenticated": authenticated,
	})
}

// Logout tears the session down and expires every credential cookie across
// all the attribute combinations it may have been set with.
func Logout(w http.ResponseWriter, r *http.Request) {
	s := currentSession(w, r)
	s.Auth.Logout(r.Context())
	utils.ExpireSessionCookies(w, domain)

	utils.SendJSONResponse(w, http.StatusOK, map[string]string{
		"message": "Signed out",
	})
}

// GetSession returns the persisted auth slice.
func GetSession(w http.ResponseWriter, r *http.Request) {
	s := currentSession(w, r)
	user, authenticated := s.Auth.Snapshot()
	utils.SendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"user":            user,
		"isAuthenticated": authenticated,
	})
}

// DisposeSession drops the session's live stores and persisted keys, and
// expires the session cookie.
func DisposeSession(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		utils.HandleError(w, http.StatusBadRequest, "No session to dispose")
		return
	}

	if err := sessions.Dispose(r.Context(), cookie.Value); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to dispose session")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	utils.SendJSONResponse(w, http.StatusOK, map[string]string{
		"message": "Session disposed",
	})
}
