package auth

// LoginPayload starts a login by requesting an OTP for a phone number.
type LoginPayload struct {
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" mod:"trim" validate:"required,indianphone"`
}

// VerifyPayload completes the pending login with the one-time code.
type VerifyPayload struct {
	OTP string `json:"otp" form:"otp" mod:"trim" validate:"required,otp"`
}
