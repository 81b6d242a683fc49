package httpapi

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthHandler gates the dashboard behind a single static credential.
// Tokens live in memory; restarting the service logs everyone out, which is
// acceptable for an internal occupational-health dashboard.
type AuthHandler struct {
	user         string
	passwordHash string
	logger       *zap.Logger

	mu     sync.RWMutex
	tokens map[string]bool
}

func NewAuthHandler(user, password string, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		user:         strings.TrimSpace(strings.ToLower(user)),
		passwordHash: sha256Hex(password),
		logger:       logger,
		tokens:       make(map[string]bool),
	}
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/v1/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid login payload"))
		return
	}

	userOK := strings.TrimSpace(strings.ToLower(req.Username)) == h.user
	passOK := subtle.ConstantTimeCompare(
		[]byte(sha256Hex(req.Password)), []byte(h.passwordHash)) == 1
	if !userOK || !passOK {
		h.logger.Warn("rejected login", zap.String("username", req.Username))
		writeJSON(w, http.StatusUnauthorized, Fail("invalid credentials"))
		return
	}

	token := uuid.NewString()
	h.mu.Lock()
	h.tokens[token] = true
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, Ok(loginResponse{Token: token}))
}

func (h *AuthHandler) validToken(token string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tokens[token]
}

// RequireAuth wraps data routes with a bearer-token check.
func (h *AuthHandler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || !h.validToken(token) {
			writeJSON(w, http.StatusUnauthorized, Fail("missing or invalid token"))
			return
		}
		next(w, r)
	}
}
