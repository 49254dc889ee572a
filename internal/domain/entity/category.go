package entity

import "time"

// Category categoría de ítems (jerárquica opcional). Solo lectura para este servicio:
// se usa para agrupar la valorización por nombre.
type Category struct {
	ID        string
	ParentID  string // vacío si es raíz
	Name      string
	CreatedAt time.Time
}
