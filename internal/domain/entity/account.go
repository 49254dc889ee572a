package entity

import "time"

// Tipos de cuenta (bolsas de dinero/valor del usuario).
const (
	AccountTypeCash     = "CASH"
	AccountTypeBank     = "BANK"
	AccountTypePlatform = "PLATFORM" // plataformas de reventa
	AccountTypeOther    = "OTHER"
)

// Account cuenta de dinero/valor de un usuario. Name es único por usuario.
// No se elimina mientras existan asientos contables que la referencien.
type Account struct {
	ID        string
	UserID    string
	Name      string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidAccountType indica si t es uno de los tipos de cuenta soportados.
func IsValidAccountType(t string) bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypePlatform, AccountTypeOther:
		return true
	}
	return false
}
