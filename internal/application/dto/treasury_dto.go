package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustBalanceRequest body para POST /api/cash-registers/:id/adjust-balance. Amount con signo.
type AdjustBalanceRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"ne=0,money"`
	Note   string          `json:"note" validate:"omitempty,max=500"`
}

// FundRequest body de depósito o retiro manual de caja.
type FundRequest struct {
	CashRegisterID string          `json:"cash_register_id" validate:"required,uuid"`
	Amount         decimal.Decimal `json:"amount" validate:"gt=0,money"`
	DepositorName  string          `json:"depositor_name" validate:"omitempty,max=200"`
	Note           string          `json:"note" validate:"omitempty,max=500"`
}

// TransferRequest body para POST /api/money-transfers.
type TransferRequest struct {
	FromRegisterID string          `json:"from_register_id" validate:"required,uuid"`
	ToRegisterID   string          `json:"to_register_id" validate:"required,uuid"`
	Amount         decimal.Decimal `json:"amount" validate:"gt=0,money"`
	Note           string          `json:"note" validate:"omitempty,max=500"`
}

// CashRegisterResponse caja con su saldo actual.
type CashRegisterResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	BranchID   string          `json:"branch_id"`
	CurrencyID string          `json:"currency_id"`
	Balance    decimal.Decimal `json:"balance"`
	IsActive   bool            `json:"is_active"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// FinancialMovementResponse fila de la bitácora de caja.
type FinancialMovementResponse struct {
	ID             string          `json:"id"`
	CashRegisterID string          `json:"cash_register_id"`
	CurrencyID     string          `json:"currency_id"`
	PaymentTypeID  string          `json:"payment_type_id,omitempty"`
	UserID         string          `json:"user_id"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	ReferenceType  string          `json:"reference_type,omitempty"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	Note           string          `json:"note,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// FinancialMovementListResponse historial paginado de una caja.
type FinancialMovementListResponse struct {
	Items []FinancialMovementResponse `json:"items"`
	Page  PageResponse                `json:"page"`
}

// FundResponse depósito o retiro registrado y el saldo resultante.
type FundResponse struct {
	ID             string          `json:"id"`
	CashRegisterID string          `json:"cash_register_id"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	DepositorName  string          `json:"depositor_name,omitempty"`
	Note           string          `json:"note,omitempty"`
	UserID         string          `json:"user_id"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TransferResponse traslado registrado con los saldos resultantes de ambas cajas.
type TransferResponse struct {
	ID               string          `json:"id"`
	FromRegisterID   string          `json:"from_register_id"`
	ToRegisterID     string          `json:"to_register_id"`
	UserID           string          `json:"user_id"`
	Amount           decimal.Decimal `json:"amount"`
	Note             string          `json:"note,omitempty"`
	FromBalanceAfter decimal.Decimal `json:"from_balance_after"`
	ToBalanceAfter   decimal.Decimal `json:"to_balance_after"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TransferDetailResponse traslado con sus dos movimientos financieros.
type TransferDetailResponse struct {
	TransferResponse
	Movements []FinancialMovementResponse `json:"movements"`
}
