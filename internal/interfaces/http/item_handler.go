package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
)

// ItemHandler maneja las peticiones HTTP de ítems y categorías (protegido).
type ItemHandler struct {
	uc         *usecase.ItemUseCase
	categories *usecase.CategoryUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, categories *usecase.CategoryUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, categories: categories}
}

// Create godoc
// @Summary      Crear ítem
// @Description  Con "purchase" registra además la compra inicial (IN/PURCHASE) en la misma transacción.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.CreateItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "Busca en nombre y marca"
// @Param        category_id  query  string  false  "Categoría"
// @Param        status       query  string  false  "ACTIVE o REMOVED"
// @Param        sort_by      query  string  false  "name, purchase_price, purchase_date, created_at"
// @Param        direction    query  string  false  "asc o desc"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/v1/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ItemListRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	out, err := h.uc.List(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Conteo de ítems por estado
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ItemStatsResponse
// @Router       /api/v1/items/stats [get]
func (h *ItemHandler) Stats(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Stats(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ítem
// @Description  El estado no se modifica aquí: solo cambia con movimientos.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar ítem (lógico)
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Categories godoc
// @Summary      Listar categorías
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        parent_id  query  string  false  "Hijas de esta categoría; \"root\" = solo raíces"
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/v1/categories [get]
func (h *ItemHandler) Categories(c *fiber.Ctx) error {
	var parentID *string
	if p := c.Query("parent_id"); p != "" {
		if p == "root" {
			p = ""
		}
		parentID = &p
	}
	out, err := h.categories.List(c.UserContext(), parentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
