package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/model"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/token"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

type stubUserRepo struct {
	users map[string]*model.User
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.users[u.Username] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) CountAdmins(_ context.Context) (int64, error) { return 0, nil }

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

func setupGuardRouter(t *testing.T) (*gin.Engine, *token.Service, *stubUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := token.NewService(testSecret, 15*time.Minute)
	repo := &stubUserRepo{users: map[string]*model.User{
		"alice": {ID: uuid.New(), Username: "alice", Role: model.RoleCustomer},
		"root":  {ID: uuid.New(), Username: "root", Role: model.RoleAdmin},
	}}

	r := gin.New()
	protected := r.Group("/", Auth(tokens, repo))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": GetUser(c).Username})
	})
	admin := protected.Group("/admin", RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, tokens, repo
}

func get(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingToken(t *testing.T) {
	r, _, _ := setupGuardRouter(t)

	w := get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongScheme(t *testing.T) {
	r, _, _ := setupGuardRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic YWxpY2U6c2VjcmV0")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	r, tokens, _ := setupGuardRouter(t)

	raw, err := tokens.Issue("alice", model.RoleCustomer, -1*time.Second)
	require.NoError(t, err)

	w := get(r, "/me", raw)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_SubjectNoLongerExists(t *testing.T) {
	r, tokens, repo := setupGuardRouter(t)

	raw, err := tokens.Issue("alice", model.RoleCustomer)
	require.NoError(t, err)
	delete(repo.users, "alice")

	// A token that outlives its account must stop working immediately.
	w := get(r, "/me", raw)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	r, tokens, _ := setupGuardRouter(t)

	raw, err := tokens.Issue("alice", model.RoleCustomer)
	require.NoError(t, err)

	w := get(r, "/me", raw)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestRequireAdmin_CustomerForbidden(t *testing.T) {
	r, tokens, _ := setupGuardRouter(t)

	raw, err := tokens.Issue("alice", model.RoleCustomer)
	require.NoError(t, err)

	w := get(r, "/admin/ping", raw)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "privileges")
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	r, tokens, _ := setupGuardRouter(t)

	raw, err := tokens.Issue("root", model.RoleAdmin)
	require.NoError(t, err)

	w := get(r, "/admin/ping", raw)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_RoleIsReadFromStore(t *testing.T) {
	r, tokens, repo := setupGuardRouter(t)

	// Token still claims admin, but the stored role was demoted after issuance.
	raw, err := tokens.Issue("root", model.RoleAdmin)
	require.NoError(t, err)
	repo.users["root"].Role = model.RoleCustomer

	w := get(r, "/admin/ping", raw)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
