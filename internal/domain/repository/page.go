package repository

import "time"

// Direcciones de orden.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Page paginación y orden para listados (offset + limit, clave de orden, dirección).
// La clave se valida contra una lista blanca en cada adaptador.
type Page struct {
	Limit     int
	Offset    int
	SortBy    string
	Direction string
}

// DateRange rango cerrado de fechas [From, To]; nil = sin límite.
type DateRange struct {
	From *time.Time
	To   *time.Time
}
