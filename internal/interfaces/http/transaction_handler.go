package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// HeaderIdempotencyKey cabecera opcional para reintentos seguros de POST /transactions.
const HeaderIdempotencyKey = "Idempotency-Key"

// TransactionHandler maneja las peticiones HTTP de movimientos (protegido).
type TransactionHandler struct {
	uc      *inventory.TransactionUseCase
	reports *analytics.ReportUseCase
}

// NewTransactionHandler construye el handler. reports atiende /transactions/stats.
func NewTransactionHandler(uc *inventory.TransactionUseCase, reports *analytics.ReportUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Registrar movimiento de inventario
// @Description  Registra el movimiento, sus dos asientos balanceados y la transición de estado del ítem
//
//	en una sola transacción. Reintentos con la misma Idempotency-Key devuelven el movimiento original.
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave de idempotencia"
// @Param        body  body  dto.CreateTransactionRequest  true  "item_id, account_id, type, quantity, unit_price, transaction_date, reason"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	record := inventory.RecordInput{
		UserID:         userID,
		ItemID:         in.ItemID,
		AccountID:      in.AccountID,
		Type:           strings.ToUpper(strings.TrimSpace(in.Type)),
		Quantity:       in.Quantity,
		UnitPrice:      in.UnitPrice,
		Reason:         strings.ToUpper(strings.TrimSpace(in.Reason)),
		Notes:          in.Notes,
		IdempotencyKey: in.IdempotencyKey,
	}
	if key := strings.TrimSpace(c.Get(HeaderIdempotencyKey)); key != "" {
		record.IdempotencyKey = key
	}
	if in.TransactionDate != "" {
		d, err := dto.ParseDate(in.TransactionDate)
		if err != nil {
			return respondError(c, fmt.Errorf("%w: transaction_date %q (use YYYY-MM-DD)", domain.ErrValidation, in.TransactionDate))
		}
		record.TransactionDate = d
	}

	tx, err := h.uc.Record(c.UserContext(), record)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionFromEntity(tx))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        type       query  string  false  "IN, OUT o ADJUST"
// @Param        item_id    query  string  false  "Ítem"
// @Param        from       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        sort_by    query  string  false  "transaction_date, created_at, total_amount"
// @Param        direction  query  string  false  "asc o desc"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	r, err := parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	page := parsePage(c)
	filter := repository.TransactionFilter{
		Type:   strings.ToUpper(c.Query("type")),
		ItemID: c.Query("item_id"),
		Range:  r,
	}
	list, total, err := h.uc.List(c.UserContext(), userID, filter, page)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.TransactionFromEntity(t))
	}
	return c.JSON(dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// GetByID godoc
// @Summary      Obtener movimiento con sus asientos
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.TransactionDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	tx, entries, err := h.uc.GetByID(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.TransactionDetailResponse{
		TransactionResponse: dto.TransactionFromEntity(tx),
		Entries:             make([]dto.LedgerEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.LedgerEntryFromEntity(e))
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Totales de entradas y salidas del período
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD). Default: hace 1 mes."
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.TransactionStatsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/transactions/stats [get]
func (h *TransactionHandler) Stats(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	r, err := parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.reports.TransactionStats(c.UserContext(), userID, r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
