package entity

import "strings"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operador"
)

// User representa un usuario del portal.
// AllowedModalities es "*" (todas) o una lista separada por comas, ej. "RX,CT".
type User struct {
	ID                int    `json:"id"`
	Name              string `json:"nombre"`
	Email             string `json:"email"`
	PasswordHash      string `json:"password_hash"` // bcrypt, nunca plano después de persistir
	Role              string `json:"perfil"`        // admin | operador
	AllowedModalities string `json:"modalidades_permitidas"`
}

// CanAccessModality indica si el usuario puede trabajar con la modalidad dada.
func (u *User) CanAccessModality(m string) bool {
	if u.AllowedModalities == "*" {
		return true
	}
	for _, allowed := range strings.Split(u.AllowedModalities, ",") {
		if strings.TrimSpace(allowed) == m {
			return true
		}
	}
	return false
}
