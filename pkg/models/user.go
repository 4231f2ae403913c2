package models

// User is the authenticated administrator. It is created by a successful OTP
// verification and lives for the duration of the session.
type User struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phoneNumber"`
	Name        string `json:"name"`
	Role        string `json:"role"`
}
