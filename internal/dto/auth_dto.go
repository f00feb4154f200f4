package dto

// LoginRequest keeps the Spanish field names of the wire contract.
type LoginRequest struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contraseña"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type SessionCountResponse struct {
	Username            string `json:"username"`
	ActiveSessionsCount int64  `json:"activeSessionsCount"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
