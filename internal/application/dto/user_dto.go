package dto

import "time"

// RegisterRequest entrada para registro (auth): password en texto, se hashea en use case.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"` // admin | empleado (default empleado)
	Localidad string `json:"localidad"`
	Sucursal  string `json:"sucursal"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Localidad string    `json:"localidad"`
	Sucursal  string    `json:"sucursal"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
