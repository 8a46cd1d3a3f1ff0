package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/apierror"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/dto"
)

// stubAuthService returns canned results so the handler tests exercise only
// binding, validation, and status mapping.
type stubAuthService struct {
	registerErr error
	loginErr    error
}

func (s *stubAuthService) Register(_ context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &dto.UserResponse{ID: "11111111-1111-1111-1111-111111111111", Username: req.Username, Email: req.Email, Role: "customer"}, nil
}

func (s *stubAuthService) Login(_ context.Context, _ dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.LoginResponse{AccessToken: "stub-token", TokenType: "bearer", ExpiresIn: 900}, nil
}

func (s *stubAuthService) BootstrapAdmin(_ context.Context, req dto.BootstrapAdminRequest) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: "22222222-2222-2222-2222-222222222222", Username: req.Username, Role: "admin"}, nil
}

func (s *stubAuthService) ResetAdminPassword(_ context.Context, req dto.ResetAdminPasswordRequest) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: "22222222-2222-2222-2222-222222222222", Username: req.Username, Role: "admin"}, nil
}

func setupAuthRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/create-admin", h.BootstrapAdmin)
	r.POST("/auth/reset-admin-password", h.ResetAdminPassword)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler_Created(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{})

	w := postJSON(r, "/auth/register", gin.H{"username": "alice", "password": "secret123"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "customer", resp.Role)
}

func TestRegisterHandler_Conflict(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{
		registerErr: fmt.Errorf("%w: username already taken", apierror.ErrConflict),
	})

	w := postJSON(r, "/auth/register", gin.H{"username": "alice", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestRegisterHandler_MalformedJSON(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{})

	w := postJSON(r, "/auth/register", `{"username": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterHandler_ValidationFailure(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{})

	// Password below min length and a malformed email.
	w := postJSON(r, "/auth/register", gin.H{"username": "alice", "email": "not-an-email", "password": "abc"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLoginHandler_OK(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{})

	w := postJSON(r, "/auth/login", gin.H{"username": "alice", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{loginErr: apierror.ErrInvalidCredentials})

	w := postJSON(r, "/auth/login", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBootstrapAdminHandler_Created(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{})

	w := postJSON(r, "/auth/create-admin", gin.H{"username": "root", "password": "rootpass"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestResetAdminPasswordHandler_MissingFields(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{})

	w := postJSON(r, "/auth/reset-admin-password", gin.H{"username": "root"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
