package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleOperario   = "operario"
	RoleCliente    = "cliente"
)

// User usuario del sistema (personal de bodega o portal de cliente).
type User struct {
	ID           string
	TenantID     int64
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
