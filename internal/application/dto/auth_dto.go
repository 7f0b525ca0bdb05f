package dto

// LoginRequest credenciales de acceso. Login acepta username o email.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse token emitido y datos básicos del usuario autenticado.
type LoginResponse struct {
	Token       string       `json:"token"`
	ExpiresIn   int          `json:"expires_in"` // segundos
	User        UserResponse `json:"user"`
	Permissions []string     `json:"permissions"`
}
