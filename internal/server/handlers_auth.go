package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/naganikhilbijjala/finpilot/internal/common"
	"github.com/naganikhilbijjala/finpilot/internal/models"
)

// --- JWT helpers ---

// signJWT creates a signed HMAC-SHA256 JWT for the given user.
func signJWT(user *models.User, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"role":  user.Role,
		"iss":   "finpilot-server",
		"iat":   now.Unix(),
		"exp":   now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// validateJWT parses and validates a JWT token string using the given secret.
func validateJWT(tokenString string, secret []byte) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return token, claims, nil
}

// hashPassword hashes a password with bcrypt, truncating to bcrypt's
// 72-byte input limit first.
func hashPassword(password string) (string, error) {
	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 {
		passwordBytes = passwordBytes[:72]
	}
	hash, err := bcrypt.GenerateFromPassword(passwordBytes, 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword compares a stored bcrypt hash against a candidate password.
func checkPassword(hash, password string) bool {
	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 {
		passwordBytes = passwordBytes[:72]
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes) == nil
}

// --- Auth handlers ---

// handleAuthLogin handles POST /api/auth/login — authenticate a user.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
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

	ctx := r.Context()
	store := s.app.Storage.InternalStore()

	user, err := store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT for login")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"token": token,
			"user":  userResponse(user),
		},
	})
}

// handleAuthValidate handles POST /api/auth/validate — validate a token and
// return the identity it carries.
func (s *Server) handleAuthValidate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		WriteError(w, http.StatusBadRequest, "token is required")
		return
	}

	_, claims, err := validateJWT(req.Token, []byte(s.app.Config.Auth.JWTSecret))
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"data":   map[string]interface{}{"valid": false},
		})
		return
	}

	sub, _ := claims["sub"].(string)
	user, err := s.app.Storage.InternalStore().GetUser(r.Context(), sub)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"data":   map[string]interface{}{"valid": false},
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"valid": true,
			"user":  userResponse(user),
		},
	})
}

// requireUser resolves the authenticated user ID from the request context.
// Writes a 401 and returns "" when no identity is present.
func requireUser(w http.ResponseWriter, r *http.Request) string {
	userID := common.ResolveUserID(r.Context())
	if userID == "" {
		writeBearerChallenge(w, "authentication required")
	}
	return userID
}
