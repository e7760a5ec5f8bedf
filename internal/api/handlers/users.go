package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartshop/qaforge/internal/testdata"
	"github.com/smartshop/qaforge/pkg/httputil"
)

// UserHandler serves signup and login endpoints
type UserHandler struct {
	store  *Store
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(store *Store, logger *zap.Logger) *UserHandler {
	return &UserHandler{store: store, logger: logger}
}

// CreateUserRequest is the signup payload
type CreateUserRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Create handles POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	for field, value := range map[string]string{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"password":   req.Password,
	} {
		if value == "" {
			httputil.Error(w, http.StatusBadRequest, "Missing required field: "+field)
			return
		}
	}

	user, err := h.store.AddUser(testdata.UserProfile{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}, req.Password)
	if err != nil {
		httputil.Error(w, http.StatusConflict, "Email already exists")
		return
	}

	h.logger.Info("mock user created", zap.Int("id", user.ID), zap.String("email", user.Email))
	httputil.JSON(w, http.StatusCreated, user)
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login. Mock authentication: any
// plausible-looking email with a password of at least 6 characters
// gets a token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "Email and password required")
		return
	}

	if strings.Contains(req.Email, "@") && len(req.Password) >= 6 {
		httputil.JSON(w, http.StatusOK, map[string]any{
			"token": "mock-" + uuid.New().String(),
			"user":  map[string]string{"email": req.Email, "role": "customer"},
		})
		return
	}

	httputil.Error(w, http.StatusUnauthorized, "Invalid credentials")
}
