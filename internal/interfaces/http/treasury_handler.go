package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/application/treasury"
	"github.com/jhoicas/kitob-pos/internal/domain"
)

// TreasuryHandler cajas, fondos circulantes y traslados (protegido).
type TreasuryHandler struct {
	uc *treasury.TreasuryUseCase
}

// NewTreasuryHandler construye el handler.
func NewTreasuryHandler(uc *treasury.TreasuryUseCase) *TreasuryHandler {
	return &TreasuryHandler{uc: uc}
}

// CreateRegister godoc
// @Summary      Crear caja
// @Description  La caja nace en 0; opening_balance se aplica como ajuste y queda en la bitácora.
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCashRegisterRequest  true  "nombre, sucursal, moneda y saldo inicial"
// @Success      201   {object}  dto.CashRegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash-registers [post]
func (h *TreasuryHandler) CreateRegister(c *fiber.Ctx) error {
	var in dto.CreateCashRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.BranchID == "" {
		in.BranchID = GetBranchID(c)
	}
	out, err := h.uc.CreateRegister(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRegisters godoc
// @Summary      Listar cajas
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal. Vacío = todas."
// @Success      200  {array}   dto.CashRegisterResponse
// @Router       /api/cash-registers [get]
func (h *TreasuryHandler) ListRegisters(c *fiber.Ctx) error {
	out, err := h.uc.ListRegisters(c.UserContext(), c.Query("branch_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetRegister godoc
// @Summary      Detalle de caja
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {object}  dto.CashRegisterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/{id} [get]
func (h *TreasuryHandler) GetRegister(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetRegister(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdjustBalance godoc
// @Summary      Ajuste manual de saldo
// @Description  amount positivo acredita, negativo debita. Puede dejar el saldo en negativo.
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la caja"
// @Param        body  body  dto.AdjustBalanceRequest  true  "monto con signo"
// @Success      200   {object}  dto.CashRegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cash-registers/{id}/adjust-balance [post]
func (h *TreasuryHandler) AdjustBalance(c *fiber.Ctx) error {
	var in dto.AdjustBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AdjustBalance(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Bitácora financiera de la caja
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la caja"
// @Param        limit   query  int     false  "Máximo 100"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.FinancialMovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/{id}/movements [get]
func (h *TreasuryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, domain.Invalid("parámetros de consulta inválidos"))
	}
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListMovements(c.UserContext(), id, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deposit godoc
// @Summary      Depósito de fondo circulante
// @Tags         circulating-funds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FundRequest  true  "caja y monto"
// @Success      201   {object}  dto.FundResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/circulating-funds/deposit [post]
func (h *TreasuryHandler) Deposit(c *fiber.Ctx) error {
	var in dto.FundRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Deposit(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Withdraw godoc
// @Summary      Retiro de fondo circulante
// @Tags         circulating-funds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FundRequest  true  "caja y monto"
// @Success      201   {object}  dto.FundResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/circulating-funds/withdraw [post]
func (h *TreasuryHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.FundRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Withdraw(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFunds godoc
// @Summary      Listar fondos circulantes
// @Tags         circulating-funds
// @Security     Bearer
// @Produce      json
// @Param        cash_register_id  query  string  false  "Caja"
// @Param        type              query  string  false  "DEPOSIT | WITHDRAWAL"
// @Success      200  {array}   dto.FundResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/circulating-funds [get]
func (h *TreasuryHandler) ListFunds(c *fiber.Ctx) error {
	registerID, err := queryID(c, "cash_register_id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListFunds(c.UserContext(), registerID, c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Traslado entre cajas
// @Tags         money-transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "caja origen, destino y monto"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/money-transfers [post]
func (h *TreasuryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Transfer(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetTransfer godoc
// @Summary      Detalle de traslado con sus movimientos
// @Tags         money-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferDetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/money-transfers/{id} [get]
func (h *TreasuryHandler) GetTransfer(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetTransfer(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListTransfers godoc
// @Summary      Listar traslados
// @Tags         money-transfers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo 100"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}   dto.TransferResponse
// @Router       /api/money-transfers [get]
func (h *TreasuryHandler) ListTransfers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, domain.Invalid("parámetros de consulta inválidos"))
	}
	out, err := h.uc.ListTransfers(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
