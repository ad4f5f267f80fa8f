package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido y datos básicos del usuario.
type LoginResponse struct {
	Token             string `json:"token"`
	UserID            int    `json:"user_id"`
	Name              string `json:"nombre"`
	Role              string `json:"perfil"`
	AllowedModalities string `json:"modalidades_permitidas"`
}

// CreateUserRequest alta de usuario.
type CreateUserRequest struct {
	Name              string `json:"nombre" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8"`
	Role              string `json:"perfil" validate:"required,oneof=admin operador"`
	AllowedModalities string `json:"modalidades_permitidas" validate:"required"`
}

// UpdateUserRequest actualización parcial de usuario; nil = sin cambio.
type UpdateUserRequest struct {
	Name              *string `json:"nombre,omitempty"`
	Password          *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role              *string `json:"perfil,omitempty" validate:"omitempty,oneof=admin operador"`
	AllowedModalities *string `json:"modalidades_permitidas,omitempty"`
}
