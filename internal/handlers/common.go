package handlers

import (
	"net/http"
	"strings"

	"github.com/launchboard/launchboard-backend/internal/models"
	"github.com/launchboard/launchboard-backend/internal/services"
)

// extractBearerToken pulls the token out of an "Authorization: Bearer <token>" header.
func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// currentUser resolves the caller's identity from the session token. Not
// signed in is an ordinary outcome, reported as (nil, false), never an error.
// A variable so tests can stub identity without Redis or PostgreSQL.
var currentUser = sessionUser

func sessionUser(r *http.Request) (*models.User, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return nil, false
	}

	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		return nil, false
	}

	user, err := services.GetUserByID(userID.String())
	if err != nil || user == nil {
		return nil, false
	}
	return user, true
}
