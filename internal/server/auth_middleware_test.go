package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/server/authctx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func accessToken(t *testing.T, id string, role domain.UserRole) string {
	return signToken(t, jwt.MapClaims{
		"sub":        id,
		"email":      "member@overtime.lk",
		"role":       string(role),
		"member_id":  "OT0001",
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	})
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)

	AuthMiddleware(testSecret)(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":        "7",
		"token_type": "refresh",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	AuthMiddleware(testSecret)(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareSetsCurrentUser(t *testing.T) {
	var got *authctx.CurrentUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = authctx.FromContext(r.Context())
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, "42", domain.RoleMember))

	AuthMiddleware(testSecret)(next).ServeHTTP(rec, req)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "member@overtime.lk", got.Email)
	assert.Equal(t, "OT0001", got.MemberID)
	assert.Equal(t, domain.RoleMember, got.Role)
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        "1",
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	AuthMiddleware(testSecret)(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})
	protected := AuthMiddleware(testSecret)(RequireRole(domain.RoleAdmin)(next))

	// Member hitting an admin route.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, "42", domain.RoleMember))
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, handlerCalled)

	// Admin passes.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, "1", domain.RoleAdmin))
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, handlerCalled)
}
