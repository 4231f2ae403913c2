package catalog

import (
	"context"
	"net/http"

	"github.com/msubham193/buckinn-console/pkg/models"
)

// LoginResult is the /auth/login response: a pending OTP session.
type LoginResult struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// VerifyResult is the /auth/verify-otp response: the authenticated user plus
// both session tokens.
type VerifyResult struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	Message      string      `json:"message"`
}

// Login requests an OTP for the given phone number. The phone number is
// assumed to be format-checked already; the session layer never calls this
// with an invalid one.
func (c *Client) Login(ctx context.Context, phoneNumber string) (*LoginResult, error) {
	payload := map[string]string{"phoneNumber": phoneNumber}
	out := &LoginResult{}
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", payload, out, "Failed to send OTP")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyOTP submits the one-time code for a pending login session.
func (c *Client) VerifyOTP(ctx context.Context, userID, otp string) (*VerifyResult, error) {
	payload := map[string]string{"userId": userID, "otp": otp}
	out := &VerifyResult{}
	err := c.doJSON(ctx, http.MethodPost, "/auth/verify-otp", payload, out, "Invalid OTP")
	if err != nil {
		return nil, err
	}
	return out, nil
}
