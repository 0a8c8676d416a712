package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleOperador  = "operador"
)

// User representa un usuario del sistema (pertenece a una Organization).
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Name           string
	Role           string // admin, bodeguero, operador
	Status         string // active, inactive, suspended
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
