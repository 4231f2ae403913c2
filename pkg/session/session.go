package session

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

var (
	// phoneRE is the fixed regional format: +91, then a non-zero digit, then
	// nine more digits.
	phoneRE = regexp.MustCompile(`^\+91[1-9][0-9]{9}$`)
	otpRE   = regexp.MustCompile(`^[0-9]{6}$`)
)

var (
	ErrInvalidPhoneNumber = errors.New("Invalid Indian phone number format")
	ErrInvalidOTP         = errors.New("OTP must be a 6-digit code")
	ErrNoSession          = errors.New("No user session found")
)

// Manager owns the authentication lifecycle: login (request OTP), verify,
// logout, and hydration from the durable credential store on startup.
type Manager struct {
	client *catalog.Client
	creds  *CredentialsFile
	log    logger.Logger

	mu            sync.RWMutex
	user          *models.User
	pendingUserID string
	accessToken   string
	refreshToken  string
	authenticated bool
}

// NewManager builds a session manager and hydrates it from the credential
// store. Partial or corrupt persisted state starts the session
// unauthenticated.
func NewManager(client *catalog.Client, creds *CredentialsFile, log logger.Logger) *Manager {
	m := &Manager{
		client: client,
		creds:  creds,
		log:    log,
	}

	stored, err := creds.Load()
	if err != nil {
		log.Err(err).Warn("failed to read persisted session")
		return m
	}
	if stored != nil {
		m.user = stored.User
		m.accessToken = stored.AccessToken
		m.refreshToken = stored.RefreshToken
		m.authenticated = true
		log.Info("session restored", logger.Data{"user_id": stored.User.ID})
	}

	return m
}

// Login validates the phone number format and requests an OTP. An invalid
// format fails fast without any network call. On success the server-issued
// session identifier is held in memory for the verify step, and the server's
// confirmation message is returned.
func (m *Manager) Login(ctx context.Context, phoneNumber string) (string, error) {
	if !phoneRE.MatchString(phoneNumber) {
		return "", ErrInvalidPhoneNumber
	}

	res, err := m.client.Login(ctx, phoneNumber)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.pendingUserID = res.UserID
	m.mu.Unlock()

	if res.Message == "" {
		return "OTP sent to your phone number", nil
	}
	return res.Message, nil
}

// VerifyOTP submits the one-time code for the pending login. On success the
// user and both tokens are persisted as a group and the session becomes
// authenticated. On any failure authentication state is left untouched.
func (m *Manager) VerifyOTP(ctx context.Context, otp string) (string, error) {
	m.mu.RLock()
	userID := m.pendingUserID
	m.mu.RUnlock()

	if userID == "" {
		return "", ErrNoSession
	}
	if !otpRE.MatchString(otp) {
		return "", ErrInvalidOTP
	}

	res, err := m.client.VerifyOTP(ctx, userID, otp)
	if err != nil {
		return "", err
	}

	user := res.User
	err = m.creds.Save(&Credentials{
		User:         &user,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.user = &user
	m.accessToken = res.AccessToken
	m.refreshToken = res.RefreshToken
	m.authenticated = true
	m.pendingUserID = ""
	m.mu.Unlock()

	m.log.Info("session authenticated", logger.Data{"user_id": user.ID})

	if res.Message == "" {
		return "Successfully logged in", nil
	}
	return res.Message, nil
}

// Logout clears durable and in-memory session state unconditionally.
func (m *Manager) Logout() {
	if err := m.creds.Clear(); err != nil {
		m.log.Err(err).Warn("failed to clear persisted session")
	}

	m.mu.Lock()
	m.user = nil
	m.pendingUserID = ""
	m.accessToken = ""
	m.refreshToken = ""
	m.authenticated = false
	m.mu.Unlock()
}

// Authenticated reports whether a verified session exists.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// User returns a copy of the authenticated user, or nil.
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// AccessToken returns the current access token for bearer attachment.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accessToken
}

// TokenExpiry reads the access token's expiry claim without verifying the
// signature. Display metadata only; the catalog API is the authority on
// whether a token is actually accepted.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	m.mu.RLock()
	token := m.accessToken
	m.mu.RUnlock()

	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
