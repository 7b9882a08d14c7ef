package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/services"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes the {"error": ...} body every endpoint uses for
// failures. Clients key off the message string, so services phrase their
// errors for end users.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondFieldError additionally names the offending input field, which the
// client renders as a form-level error ("email" for duplicate signups).
func respondFieldError(w http.ResponseWriter, status int, message, field string) {
	respondJSON(w, status, map[string]string{"error": message, "field": field})
}

// serviceError maps a service-layer error to a status code. Membership and
// role failures are 403, missing rows are 404, exhausted vote tickets are
// 409, everything else is a plain validation 400.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotMember), errors.Is(err, services.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrReceiptNotFound), errors.Is(err, pgx.ErrNoRows):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrNoTicketsRemaining):
		respondError(w, http.StatusConflict, err.Error())
	case strings.HasSuffix(err.Error(), "not found"):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}

// pathID reads a numeric path variable. A non-numeric value is a routing
// mistake on the client side, reported as 400 by the caller.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// getIPAddress extracts the real IP address from the request
func getIPAddress(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
