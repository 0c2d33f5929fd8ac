package dto

// PasswordRequest carries the app password for setup and unlock.
type PasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned after a successful setup or unlock.
type TokenResponse struct {
	Token string `json:"token"`
}

// AuthStatusResponse tells the client whether to show setup or unlock.
type AuthStatusResponse struct {
	Configured bool `json:"configured"`
}
