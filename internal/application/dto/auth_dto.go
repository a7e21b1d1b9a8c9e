package dto

// LoginRequest body para POST /api-token-auth.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido tras autenticación correcta.
type LoginResponse struct {
	Token string `json:"token"`
}
