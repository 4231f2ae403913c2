package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/binder"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/errcodes"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/msubham193/buckinn-console/pkg/session"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeCatalog(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, body any) {
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeJSON(w, map[string]any{
			"success": true,
			"data":    map[string]any{"userId": "user-1", "message": "OTP sent"},
		})
	})
	mux.HandleFunc("POST /auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		body := struct {
			UserID string `json:"userId"`
			OTP    string `json:"otp"`
		}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.OTP != "123456" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]any{"success": false, "message": "Invalid OTP"})
			return
		}
		writeJSON(w, map[string]any{
			"success": true,
			"data": map[string]any{
				"message":      "Welcome back",
				"user":         map[string]any{"id": "user-1", "phoneNumber": "+919876543210", "name": "Asha", "role": "admin"},
				"accessToken":  "access-token",
				"refreshToken": "refresh-token",
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestHandler(t *testing.T, requests *atomic.Int64) *handler {
	t.Helper()

	srv := newFakeCatalog(t, requests)
	client := catalog.New(srv.URL, 5*time.Second)
	creds := session.NewCredentialsFile(t.TempDir())
	sessions := session.NewManager(client, creds, logger.New())
	client.SetTokenFunc(sessions.AccessToken)
	return &handler{sessions: sessions}
}

func newTestContext(t *testing.T, path, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func TestHandlerLogin_InvalidPhoneFailsBeforeNetwork(t *testing.T) {
	t.Parallel()

	requests := &atomic.Int64{}
	h := newTestHandler(t, requests)

	c, _ := newTestContext(t, "/auth/login", `{"phoneNumber":"+910876543210"}`)
	err := h.login(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)
	assert.Equal(t, "Invalid Indian phone number format", codeErr.Message)
	assert.Equal(t, int64(0), requests.Load())
}

func TestHandlerLogin_ReturnsServerMessage(t *testing.T) {
	t.Parallel()

	requests := &atomic.Int64{}
	h := newTestHandler(t, requests)

	c, rr := newTestContext(t, "/auth/login", `{"phoneNumber":"+919876543210"}`)
	require.NoError(t, h.login(c))
	assert.Equal(t, http.StatusOK, rr.Code)

	res := struct {
		Message string `json:"message"`
	}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "OTP sent", res.Message)
}

func TestHandlerVerifyOTP_Lifecycle(t *testing.T) {
	t.Parallel()

	requests := &atomic.Int64{}
	h := newTestHandler(t, requests)

	c, _ := newTestContext(t, "/auth/login", `{"phoneNumber":"+919876543210"}`)
	require.NoError(t, h.login(c))

	// A wrong code leaves the session unauthenticated.
	c, _ = newTestContext(t, "/auth/verify-otp", `{"otp":"999999"}`)
	err := h.verifyOTP(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "unauthorized", codeErr.Code)
	assert.Equal(t, "Invalid OTP", codeErr.Message)
	assert.False(t, h.sessions.Authenticated())

	c, rr := newTestContext(t, "/auth/verify-otp", `{"otp":"123456"}`)
	require.NoError(t, h.verifyOTP(c))
	assert.Equal(t, http.StatusOK, rr.Code)

	res := struct {
		Message string       `json:"message"`
		User    *models.User `json:"user"`
	}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "Welcome back", res.Message)
	require.NotNil(t, res.User)
	assert.Equal(t, "user-1", res.User.ID)
	assert.True(t, h.sessions.Authenticated())
}

func TestHandlerVerifyOTP_WithoutPendingLogin(t *testing.T) {
	t.Parallel()

	requests := &atomic.Int64{}
	h := newTestHandler(t, requests)

	c, _ := newTestContext(t, "/auth/verify-otp", `{"otp":"123456"}`)
	err := h.verifyOTP(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "unauthorized", codeErr.Code)
	assert.Equal(t, "No user session found", codeErr.Message)
	assert.Equal(t, int64(0), requests.Load())
}

func TestHandlerLogout_ClearsSession(t *testing.T) {
	t.Parallel()

	requests := &atomic.Int64{}
	h := newTestHandler(t, requests)

	c, _ := newTestContext(t, "/auth/login", `{"phoneNumber":"+919876543210"}`)
	require.NoError(t, h.login(c))
	c, _ = newTestContext(t, "/auth/verify-otp", `{"otp":"123456"}`)
	require.NoError(t, h.verifyOTP(c))
	require.True(t, h.sessions.Authenticated())

	c, rr := newTestContext(t, "/auth/logout", "")
	require.NoError(t, h.logout(c))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, h.sessions.Authenticated())
}

func TestHandlerMe(t *testing.T) {
	t.Parallel()

	requests := &atomic.Int64{}
	h := newTestHandler(t, requests)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rr := httptest.NewRecorder()

	err := h.me(e.NewContext(req, rr))
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "unauthorized", codeErr.Code)

	c, _ := newTestContext(t, "/auth/login", `{"phoneNumber":"+919876543210"}`)
	require.NoError(t, h.login(c))
	c, _ = newTestContext(t, "/auth/verify-otp", `{"otp":"123456"}`)
	require.NoError(t, h.verifyOTP(c))

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rr = httptest.NewRecorder()
	require.NoError(t, h.me(e.NewContext(req, rr)))

	res := struct {
		User *models.User `json:"user"`
	}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.NotNil(t, res.User)
	assert.Equal(t, "Asha", res.User.Name)
}
