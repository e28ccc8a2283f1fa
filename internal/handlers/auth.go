package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/qnextlabs/fleet-console/internal/auth"
	"github.com/qnextlabs/fleet-console/internal/busapi"
	"github.com/qnextlabs/fleet-console/internal/models"
	"github.com/qnextlabs/fleet-console/internal/reconcile"
)

// AuthHandler handles operator login and logout. Credentials are verified
// by the fleet backend when one is configured; the console then issues its
// own session token wrapping the backend identity. Without a backend a
// single local admin account can be configured instead.
type AuthHandler struct {
	authService *auth.Service
	api         *busapi.Client

	// Local fallback account, used only when no backend is configured.
	adminEmail string
	adminHash  string
}

// NewAuthHandler creates a new authentication handler. api may be nil when
// no backend is configured.
func NewAuthHandler(authService *auth.Service, api *busapi.Client, adminEmail, adminHash string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		api:         api,
		adminEmail:  adminEmail,
		adminHash:   adminHash,
	}
}

// Login handles operator login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var loginReq models.LoginRequest
	if err := json.Unmarshal(body, &loginReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Validate input
	if loginReq.Email == "" || loginReq.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}
	if err := h.authService.ValidateEmail(loginReq.Email); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var user *models.User
	if h.api != nil {
		user, err = h.backendLogin(r, loginReq)
	} else {
		user, err = h.localLogin(loginReq)
	}
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	response := models.LoginResponse{
		Token: token,
		User:  *user,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// backendLogin verifies the credentials against the fleet backend and
// keeps its access token on the shared client for subsequent requests.
func (h *AuthHandler) backendLogin(r *http.Request, req models.LoginRequest) (*models.User, error) {
	raw, err := h.api.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if token := backendToken(raw); token != "" {
		h.api.SetToken(token)
	}

	user := userFromBackend(raw, req.Email)
	return &user, nil
}

// localLogin checks the configured fallback admin account.
func (h *AuthHandler) localLogin(req models.LoginRequest) (*models.User, error) {
	if h.adminEmail == "" || h.adminHash == "" || req.Email != h.adminEmail {
		return nil, auth.ErrInvalidCredentials
	}
	if !h.authService.CheckPassword(req.Password, h.adminHash) {
		return nil, auth.ErrInvalidCredentials
	}
	return &models.User{
		ID:    "local-admin",
		Email: h.adminEmail,
		Name:  "Administrator",
		Role:  models.RoleAdmin,
	}, nil
}

// Logout invalidates the backend session and drops the stored token. A
// backend logout failure is logged but never surfaced; the console session
// ends either way.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.api != nil {
		if err := h.api.Logout(r.Context()); err != nil {
			log.WithError(err).Warn("backend logout failed")
		}
		h.api.SetToken("")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
}

// backendToken digs the session token out of a login payload, wherever
// the backend chose to put it.
func backendToken(raw reconcile.Raw) string {
	if token := raw.FirstString("access_token", "accessToken", "token"); token != "" {
		return token
	}
	if nested, ok := raw["data"].(map[string]interface{}); ok {
		return reconcile.Raw(nested).FirstString("access_token", "accessToken", "token")
	}
	return ""
}

// userFromBackend reconciles the backend's login payload into an operator
// record. Backends disagree on field names the same way bus payloads do.
func userFromBackend(raw reconcile.Raw, fallbackEmail string) models.User {
	user := models.User{
		ID:    raw.FirstString("id", "_id", "user_id", "userId"),
		Email: raw.FirstString("email", "user_email"),
		Name:  raw.FirstString("name", "full_name", "username"),
	}

	if nested, ok := raw["user"].(map[string]interface{}); ok {
		inner := reconcile.Raw(nested)
		if user.ID == "" {
			user.ID = inner.FirstString("id", "_id", "user_id", "userId")
		}
		if user.Email == "" {
			user.Email = inner.FirstString("email", "user_email")
		}
		if user.Name == "" {
			user.Name = inner.FirstString("name", "full_name", "username")
		}
		if user.Role == "" {
			user.Role = models.Role(inner.FirstString("role"))
		}
	}

	if user.Role == "" {
		user.Role = models.Role(raw.FirstString("role"))
	}
	if !models.IsValidRole(user.Role) {
		user.Role = models.RoleViewer
	}
	if user.Email == "" {
		user.Email = fallbackEmail
	}
	if user.ID == "" {
		user.ID = user.Email
	}
	return user
}
