package entity

import "time"

// Roles válidos para Employee.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// EmployeeStatusActive es el único estado que permite iniciar sesión.
const EmployeeStatusActive = "active"

// Employee representa un empleado que atiende ventas.
type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
