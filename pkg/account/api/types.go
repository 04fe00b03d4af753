package api

// ChangePasswordRequest is the body of PUT /account/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// MessageResponse carries a single client-facing message
type MessageResponse struct {
	Message string `json:"message"`
}
