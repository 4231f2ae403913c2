package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/session"
)

// RegisterRoutesWithGroup mounts the authentication lifecycle on g. Every
// route is reachable without a session: logout clears unconditionally, and me
// rejects unauthenticated calls itself.
func RegisterRoutesWithGroup(g *echo.Group, sessions *session.Manager) {
	h := &handler{
		sessions: sessions,
	}

	g.POST("/login", h.login)
	g.POST("/verify-otp", h.verifyOTP)
	g.POST("/logout", h.logout)
	g.GET("/me", h.me)
}

// RegisterPageRoutes mounts the browser-facing login landing on e, so
// redirects to it resolve instead of falling back into the not-found handler.
func RegisterPageRoutes(e *echo.Echo, sessions *session.Manager) {
	h := &handler{
		sessions: sessions,
	}

	e.GET(session.LoginPath, h.loginPage)
}
