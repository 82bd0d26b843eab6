package surrealtask

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/surrealdb/surrealtask/pkg/client"
	"github.com/surrealdb/surrealtask/pkg/models"
)

// Simple in-memory session store for demo purposes
// In production, use a proper session store (Redis, etc.)
var (
	sessions  = make(map[string]*models.User)
	sessionMu sync.RWMutex
)

// generateToken creates a cryptographically secure random token for
// authentication sessions: 32 random bytes encoded as a 64-character hex
// string, suitable for HTTP bearer authentication.
//
// Production considerations:
//   - Token expiration should be implemented
//   - Consider JWT tokens for stateless authentication in distributed systems
//   - Add rate limiting for token generation endpoints
func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// currentUser resolves the request's bearer token to the signed-in user.
// Returns nil when the request carries no token or the token has no session.
// Task write handlers use this both to enforce the signed-in requirement and
// to populate the modified_by reference.
func (a *App) currentUser(r *http.Request) *models.User {
	token := getTokenFromHeader(r)
	if token == "" {
		return nil
	}

	sessionMu.RLock()
	user, ok := sessions[token]
	sessionMu.RUnlock()

	if !ok {
		return nil
	}
	return user
}

// handleSignUp handles user registration with automatic authentication.
// It creates the user account and immediately returns an authentication
// token, so clients need no separate signin after registration.
//
// Request body is a SignUpRequest with:
//   - Email: user's email address (required, unique)
//   - Name: user's display name (required)
//   - Password: accepted but not verified in this demo-grade implementation
//
// Security considerations for production:
//   - Password hashing with bcrypt or similar
//   - Email format validation and normalization
//   - Rate limiting to prevent registration abuse
//   - Email verification workflow
func (a *App) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req client.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Create user with unique ID
	user := &models.User{
		Email:     req.Email,
		Name:      req.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Save user to database
	if err := a.store.CreateUser(r.Context(), user); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Generate auth token
	token, err := generateToken()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Store session
	sessionMu.Lock()
	sessions[token] = user
	sessionMu.Unlock()

	// Return response
	resp := client.AuthResponse{
		Token: token,
		User:  user,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleSignIn handles user authentication
func (a *App) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req client.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Find user by email
	user, err := a.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	// In a real app, verify password hash here
	// For demo, we accept any password

	// Generate auth token
	token, err := generateToken()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Store session
	sessionMu.Lock()
	sessions[token] = user
	sessionMu.Unlock()

	// Return response
	resp := client.AuthResponse{
		Token: token,
		User:  user,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// getTokenFromHeader extracts the token from the Authorization header
func getTokenFromHeader(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	// Remove "Bearer " prefix if present
	const bearerPrefix = "Bearer "
	if len(auth) > len(bearerPrefix) && auth[:len(bearerPrefix)] == bearerPrefix {
		return auth[len(bearerPrefix):]
	}
	return auth
}

// handleSignOut handles user logout
func (a *App) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token := getTokenFromHeader(r)
	if token != "" {
		sessionMu.Lock()
		delete(sessions, token)
		sessionMu.Unlock()
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// handleGetCurrentUser handles getting the current authenticated user
func (a *App) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := a.currentUser(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// handleRefreshToken handles token refresh
func (a *App) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	oldToken := getTokenFromHeader(r)
	if oldToken == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionMu.RLock()
	user, ok := sessions[oldToken]
	sessionMu.RUnlock()

	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Generate new token
	newToken, err := generateToken()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Update session
	sessionMu.Lock()
	delete(sessions, oldToken)
	sessions[newToken] = user
	sessionMu.Unlock()

	// Return response
	resp := client.AuthResponse{
		Token: newToken,
		User:  user,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
