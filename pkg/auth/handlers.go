package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/errcodes"
	"github.com/msubham193/buckinn-console/pkg/inflight"
	"github.com/msubham193/buckinn-console/pkg/session"
	"github.com/pkg/errors"
)

type handler struct {
	sessions *session.Manager
	gate     inflight.Gate
}

// apiError translates failures from the session manager and the catalog API
// into console error codes. Upstream rejections keep their message; format
// problems surface as validation errors before any network call happens.
func apiError(err error) error {
	switch {
	case errors.Is(err, session.ErrInvalidPhoneNumber), errors.Is(err, session.ErrInvalidOTP):
		return errcodes.ValidationError(err.Error())
	case errors.Is(err, session.ErrNoSession):
		return errcodes.Unauthorized(err.Error())
	}

	apiErr := &catalog.Error{}
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= http.StatusInternalServerError {
			return errcodes.Upstream(apiErr.Message)
		}
		return errcodes.Unauthorized(apiErr.Message)
	}
	return errors.WithStack(err)
}

// loginPage is the unauthenticated landing. A visitor with a live session is
// sent straight to the dashboard.
func (h *handler) loginPage(c echo.Context) error {
	if h.sessions.Authenticated() {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": "Sign in with your phone number",
	}))
}

func (h *handler) login(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.gate.Enter() {
		return errcodes.Busy("Signing in")
	}
	defer h.gate.Leave()

	params := LoginPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	msg, err := h.sessions.Login(ctx, params.PhoneNumber)
	if err != nil {
		return apiError(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": msg,
	}))
}

func (h *handler) verifyOTP(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.gate.Enter() {
		return errcodes.Busy("Signing in")
	}
	defer h.gate.Leave()

	params := VerifyPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	msg, err := h.sessions.VerifyOTP(ctx, params.OTP)
	if err != nil {
		return apiError(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": msg,
		"user":    h.sessions.User(),
	}))
}

func (h *handler) logout(c echo.Context) error {
	h.sessions.Logout()

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": "Logged out",
	}))
}

// me reports the authenticated user plus token expiry metadata for display.
func (h *handler) me(c echo.Context) error {
	user := h.sessions.User()
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	res := map[string]any{
		"user": user,
	}
	if exp, ok := h.sessions.TokenExpiry(); ok {
		res["tokenExpiresAt"] = exp
	}

	return errors.WithStack(c.JSON(http.StatusOK, res))
}
