package dto

import "time"

// CreateAccountRequest body para POST /api/v1/accounts.
type CreateAccountRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type" validate:"required,oneof=CASH BANK PLATFORM OTHER"`
}

// UpdateAccountRequest body para PUT /api/v1/accounts/:id (campos opcionales).
type UpdateAccountRequest struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

// AccountResponse salida de una cuenta.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountListResponse listado de cuentas del usuario.
type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
}
