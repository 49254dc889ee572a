package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ReportHandler maneja los reportes del motor de agregación y el diario (protegido).
// Los rangos from/to son opcionales: por defecto hoy y N meses hacia atrás.
type ReportHandler struct {
	uc           *analytics.ReportUseCase
	transactions *inventory.TransactionUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, transactions *inventory.TransactionUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, transactions: transactions}
}

// InventoryValue godoc
// @Summary      Valor actual del inventario
// @Description  Suma del precio de compra de ítems activos no borrados, total y por categoría.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValueDTO
// @Router       /api/v1/reports/inventory-value [get]
func (h *ReportHandler) InventoryValue(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.InventoryValue(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DisposalProfit godoc
// @Summary      Resultado de salidas del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD). Default: hace 1 mes."
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.DisposalProfitDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/disposal-profit [get]
func (h *ReportHandler) DisposalProfit(c *fiber.Ctx) error {
	return h.withRange(c, func(userID string, r repository.DateRange) (any, error) {
		return h.uc.DisposalProfit(c.UserContext(), userID, r)
	})
}

// Trends godoc
// @Summary      Tendencia mensual de entradas y salidas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD). Default: hace 6 meses."
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.TrendsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/trends [get]
func (h *ReportHandler) Trends(c *fiber.Ctx) error {
	return h.withRange(c, func(userID string, r repository.DateRange) (any, error) {
		return h.uc.Trends(c.UserContext(), userID, r)
	})
}

// AccountBalance godoc
// @Summary      Débitos, créditos y saldo de una cuenta
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        account_id  query  string  true   "Cuenta"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.AccountBalanceDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/account-balance [get]
func (h *ReportHandler) AccountBalance(c *fiber.Ctx) error {
	accountID := c.Query("account_id")
	if accountID == "" {
		return respondError(c, fmt.Errorf("%w: account_id requerido", domain.ErrValidation))
	}
	return h.withRange(c, func(userID string, r repository.DateRange) (any, error) {
		return h.uc.AccountBalance(c.UserContext(), userID, accountID, r)
	})
}

// LedgerCategories godoc
// @Summary      Montos por código contable y dirección
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.LedgerCategoriesDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/ledger-categories [get]
func (h *ReportHandler) LedgerCategories(c *fiber.Ctx) error {
	return h.withRange(c, func(userID string, r repository.DateRange) (any, error) {
		return h.uc.AmountByLedgerCategory(c.UserContext(), userID, r)
	})
}

// Summary godoc
// @Summary      Resumen: valor de inventario, estadísticas y tendencias
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Router       /api/v1/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Summary(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Ledger godoc
// @Summary      Diario contable
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        account_id  query  string  false  "Cuenta"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.LedgerListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/ledger [get]
func (h *ReportHandler) Ledger(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	r, err := parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	page := parsePage(c)
	list, total, err := h.transactions.ListLedger(c.UserContext(), userID,
		repository.LedgerFilter{AccountID: c.Query("account_id"), Range: r}, page)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.LedgerEntryFromEntity(e))
	}
	return c.JSON(dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// LedgerXLSX godoc
// @Summary      Exportar el diario a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/ledger.xlsx [get]
func (h *ReportHandler) LedgerXLSX(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	r, err := parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ExportLedgerXLSX(c.UserContext(), userID, r)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ledger.xlsx"`)
	return c.Send(out)
}

// ValuationPDF godoc
// @Summary      Reporte de valorización en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/v1/reports/valuation.pdf [get]
func (h *ReportHandler) ValuationPDF(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ValuationPDF(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimePDF)
	c.Set(fiber.HeaderContentDisposition, `inline; filename="valuation.pdf"`)
	return c.Send(out)
}

// withRange resuelve usuario y rango y responde JSON con el resultado de fn.
func (h *ReportHandler) withRange(c *fiber.Ctx, fn func(userID string, r repository.DateRange) (any, error)) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	r, err := parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := fn(userID, r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
