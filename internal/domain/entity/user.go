package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleCashier = "CASHIER"
)

// User usuario del sistema (cajero, gerente o administrador).
type User struct {
	ID           string
	BranchID     string
	Email        string
	PasswordHash string // bcrypt
	FullName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
