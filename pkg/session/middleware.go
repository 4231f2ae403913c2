package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/errcodes"
)

// LoginPath is where unauthenticated visitors land.
const LoginPath = "/login"

// Middleware guards console routes behind the session's authenticated flag.
type Middleware struct {
	sessions *Manager
}

func NewMiddleware(sessions *Manager) *Middleware {
	return &Middleware{sessions: sessions}
}

// RequireSession rejects API calls without an authenticated session.
func (mw *Middleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !mw.sessions.Authenticated() {
			return errcodes.Unauthorized("Authentication required")
		}
		return next(c)
	}
}

// RedirectUnauthenticated sends browser-facing routes to the login page when
// no session exists.
func (mw *Middleware) RedirectUnauthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !mw.sessions.Authenticated() {
			return c.Redirect(http.StatusFound, LoginPath)
		}
		return next(c)
	}
}
