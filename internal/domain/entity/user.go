package entity

import "time"

// Estados válidos para User.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User dueño de cuentas, ítems, movimientos y asientos. Solo actúa como clave de partición.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
