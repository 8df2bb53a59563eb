package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naganikhilbijjala/finpilot/internal/models"
)

// --- User handlers ---

// validateEmail checks that an email is plausible and safe for storage.
func validateEmail(email string) string {
	if email == "" {
		return "email is required"
	}
	if len(email) > 254 {
		return "email must be 254 characters or fewer"
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "email is not valid"
	}
	for _, c := range email {
		if c < 0x20 || c == 0x7f {
			return "email contains invalid control characters"
		}
	}
	return ""
}

// handleUserCreate handles POST /api/users — register a new user.
func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if errMsg := validateEmail(email); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}
	if req.Password == "" {
		WriteError(w, http.StatusBadRequest, "password is required")
		return
	}

	ctx := r.Context()
	store := s.app.Storage.InternalStore()

	if _, err := store.GetUserByEmail(ctx, email); err == nil {
		WriteError(w, http.StatusConflict, fmt.Sprintf("user '%s' already exists", email))
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user := &models.User{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	if err := store.SaveUser(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to save user")
		WriteError(w, http.StatusInternalServerError, "failed to save user")
		return
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("User created")

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "ok",
		"data":   userResponse(user),
	})
}

// routeUsers dispatches GET/DELETE for /api/users/{id}.
func (s *Server) routeUsers(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "user id is required in path")
		return
	}

	// Users may only read or delete their own account.
	userID := requireUser(w, r)
	if userID == "" {
		return
	}
	if userID != id {
		WriteError(w, http.StatusForbidden, "forbidden")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleUserGet(w, r, id)
	case http.MethodDelete:
		s.handleUserDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// handleUserGet handles GET /api/users/{id}.
func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request, id string) {
	user, err := s.app.Storage.InternalStore().GetUser(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   userResponse(user),
	})
}

// handleUserDelete handles DELETE /api/users/{id}.
func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	store := s.app.Storage.InternalStore()

	if _, err := store.GetUser(ctx, id); err != nil {
		WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := store.DeleteUser(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
		WriteError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}

// userResponse builds a safe response from a User, omitting the password hash.
func userResponse(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"user_id":    user.UserID,
		"email":      user.Email,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	}
}
