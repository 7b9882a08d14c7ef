package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateRejectsBadHeaders(t *testing.T) {
	m := &AuthMiddleware{}

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header"},
		{name: "no bearer prefix", header: "token abc123"},
		{name: "bare token", header: "abc123"},
		{name: "lowercase bearer", header: "bearer abc123"},
		{name: "too many parts", header: "Bearer abc 123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	m := &AuthMiddleware{}

	tests := []struct {
		name           string
		role           string
		expectedStatus int
		expectCalled   bool
	}{
		{name: "admin passes", role: models.RoleAdmin, expectedStatus: http.StatusOK, expectCalled: true},
		{name: "member forbidden", role: models.RoleMember, expectedStatus: http.StatusForbidden},
		{name: "unauthenticated rejected", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			if tt.role != "" {
				req = req.WithContext(context.WithValue(req.Context(), RoleKey, tt.role))
			}
			rec := httptest.NewRecorder()

			m.RequireAdmin(okHandler(&called)).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectCalled, called)
		})
	}
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()

	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
	_, ok = GetEmailFromContext(ctx)
	assert.False(t, ok)
	_, ok = GetRoleFromContext(ctx)
	assert.False(t, ok)
	assert.False(t, IsAdmin(ctx))

	ctx = context.WithValue(ctx, UserIDKey, 42)
	ctx = context.WithValue(ctx, EmailKey, "dana@example.com")
	ctx = context.WithValue(ctx, RoleKey, models.RoleAdmin)

	userID, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, 42, userID)

	email, ok := GetEmailFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "dana@example.com", email)

	role, ok := GetRoleFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, models.RoleAdmin, role)
	assert.True(t, IsAdmin(ctx))
}

func TestPanicRecovery(t *testing.T) {
	handler := PanicRecovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, rec.Body.String())
}

func TestPanicRecoveryPassthrough(t *testing.T) {
	var called bool
	handler := PanicRecovery(zap.NewNop())(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
