package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/application/inventory"
	"github.com/jhoicas/kitob-pos/internal/domain"
)

// InventoryHandler consultas y ajustes de stock por producto (protegido).
type InventoryHandler struct {
	uc            *inventory.StockUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment}
}

// GetByBarcode godoc
// @Summary      Buscar producto por código de barras o ISBN
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código de barras o ISBN"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/barcode/{code} [get]
func (h *InventoryHandler) GetByBarcode(c *fiber.Ctx) error {
	out, err := h.uc.GetByBarcode(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock a una cantidad absoluta
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "bodega y cantidad final"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjust-stock [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AdjustStock(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Bitácora de movimientos del producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id            path   string  true   "ID del producto"
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        limit         query  int     false  "Máximo 100"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ProductMovementListResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, domain.Invalid("parámetros de consulta inválidos"))
	}
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	warehouseID, err := queryID(c, "warehouse_id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListMovements(c.UserContext(), id, warehouseID, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Productos en o por debajo del umbral de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega. Vacío = todas."
// @Success      200  {array}   dto.LowStockItemResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	warehouseID, err := queryID(c, "warehouse_id")
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.replenishment.ListLowStock(c.UserContext(), warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}
