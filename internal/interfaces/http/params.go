package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// parseRange lee from/to (YYYY-MM-DD) del query. Ausentes quedan nil y el caso de uso aplica el default.
func parseRange(c *fiber.Ctx) (repository.DateRange, error) {
	var in dto.DateRangeRequest
	if err := c.QueryParser(&in); err != nil {
		return repository.DateRange{}, fmt.Errorf("%w: parámetros de consulta inválidos", domain.ErrValidation)
	}
	var r repository.DateRange
	if in.From != "" {
		t, err := dto.ParseDate(in.From)
		if err != nil {
			return r, fmt.Errorf("%w: from %q (use YYYY-MM-DD)", domain.ErrValidation, in.From)
		}
		r.From = &t
	}
	if in.To != "" {
		t, err := dto.ParseDate(in.To)
		if err != nil {
			return r, fmt.Errorf("%w: to %q (use YYYY-MM-DD)", domain.ErrValidation, in.To)
		}
		r.To = &t
	}
	return r, nil
}

// parsePage lee limit/offset/sort_by/direction del query.
func parsePage(c *fiber.Ctx) repository.Page {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return repository.Page{
		Limit:     p.Limit,
		Offset:    p.Offset,
		SortBy:    c.Query("sort_by"),
		Direction: c.Query("direction"),
	}
}
