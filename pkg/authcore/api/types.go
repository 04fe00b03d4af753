package api

// SignupRequest is the body of POST /auth/signup
type SignupRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Age        int32  `json:"age"`
	NationalID string `json:"nationalId"`
	Email      string `json:"email"`
}

// SignupResponse is the created-account summary. The generated password
// is emailed, never returned here.
type SignupResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Active  bool   `json:"active"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Token            string `json:"token"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password
type ResetPasswordRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
	NewPassword      string `json:"newPassword"`
	ConfirmPassword  string `json:"confirmPassword"`
}

// MessageResponse carries a single client-facing message
type MessageResponse struct {
	Message string `json:"message"`
}
