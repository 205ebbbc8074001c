package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleEmpleado = "empleado"
)

// User usuario del sistema. Localidad y Sucursal definen el scope que ven
// todas sus peticiones.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	Localidad    string
	Sucursal     string
	CreatedAt    time.Time
}
