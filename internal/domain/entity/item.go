package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un ítem.
const (
	ItemStatusActive  = "ACTIVE"
	ItemStatusRemoved = "REMOVED" // terminal: solo se llega con un movimiento de salida
)

// Item objeto físico propiedad de un usuario.
// Status y DeletedAt son independientes: un ítem REMOVED no queda borrado y viceversa.
type Item struct {
	ID            string
	UserID        string
	Name          string
	CategoryID    string // vacío si no tiene categoría
	CategoryName  string // solo lectura (join con categories)
	Brand         string
	Size          string
	Color         string
	PurchasePrice decimal.Decimal
	PurchaseDate  time.Time
	Location      string
	Images        []string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// IsDeleted indica si el ítem fue borrado lógicamente.
func (i *Item) IsDeleted() bool { return i.DeletedAt != nil }

// IsCurrent indica si el ítem cuenta para la valorización actual (activo y no borrado).
func (i *Item) IsCurrent() bool {
	return i.Status == ItemStatusActive && !i.IsDeleted()
}
