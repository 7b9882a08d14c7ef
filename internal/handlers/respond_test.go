package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id": 7}`, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, http.StatusBadRequest, "vendor is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "vendor is required"}`, rec.Body.String())
}

func TestRespondFieldError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondFieldError(rec, http.StatusConflict, "email already registered", "email")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error": "email already registered", "field": "email"}`, rec.Body.String())
}

func TestServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "membership failure is forbidden",
			err:            services.ErrNotMember,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "role failure is forbidden",
			err:            services.ErrForbidden,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "wrapped forbidden keeps its status",
			err:            fmt.Errorf("approve receipt: %w", services.ErrForbidden),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing receipt is not found",
			err:            services.ErrReceiptNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing row is not found",
			err:            pgx.ErrNoRows,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "not-found phrasing is not found",
			err:            errors.New("production not found"),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "exhausted tickets conflict",
			err:            repositories.ErrNoTicketsRemaining,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "anything else is a validation error",
			err:            errors.New("amount must be positive"),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			serviceError(rec, tt.err)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestPathID(t *testing.T) {
	router := mux.NewRouter()
	var id int
	var err error
	router.HandleFunc("/productions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err = pathID(r, "id")
	})

	req := httptest.NewRequest(http.MethodGet, "/productions/42", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	req = httptest.NewRequest(http.MethodGet, "/productions/forty-two", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)
	assert.EqualError(t, err, "invalid id")
}

func TestGetIPAddress(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		expected   string
	}{
		{
			name:       "x-forwarded-for wins",
			forwarded:  "203.0.113.9, 10.0.0.1",
			realIP:     "198.51.100.4",
			remoteAddr: "10.0.0.2:4444",
			expected:   "203.0.113.9",
		},
		{
			name:       "x-real-ip next",
			realIP:     "198.51.100.4",
			remoteAddr: "10.0.0.2:4444",
			expected:   "198.51.100.4",
		},
		{
			name:       "remote addr last",
			remoteAddr: "10.0.0.2:4444",
			expected:   "10.0.0.2:4444",
		},
		{
			name:       "single forwarded entry",
			forwarded:  "203.0.113.9",
			remoteAddr: "10.0.0.2:4444",
			expected:   "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			assert.Equal(t, tt.expected, getIPAddress(req))
		})
	}
}
