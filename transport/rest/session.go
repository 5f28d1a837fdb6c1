package rest

import (
	"net/http"
	"time"

	"github.com/glowgrid/vanishing-tictactoe-backend/internal/pkg"
)

const sessionCookieName = "user_session"

// getOrSetSession - returns the session ID from the request cookie,
// minting and setting a new one when the browser has none yet.
func (that *Server) getOrSetSession(w http.ResponseWriter, req *http.Request) string {
	cookie, err := req.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionID := pkg.GenerateNewSessionID()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Expires:  time.Now().Add(24 * time.Hour),
		Path:     "/",
		HttpOnly: true,
	})

	that.logger.Info("session cookie not found, new one created", "sessionID", sessionID)

	return sessionID
}
