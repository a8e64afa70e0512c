package notify

import (
	"time"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaleCompletedEvent cuerpo publicado al completarse una venta.
type SaleCompletedEvent struct {
	SaleID         string          `json:"sale_id"`
	BranchID       string          `json:"branch_id"`
	CashRegisterID string          `json:"cash_register_id"`
	CurrencyID     string          `json:"currency_id"`
	PaymentTypeID  string          `json:"payment_type_id"`
	CustomerName   string          `json:"customer_name,omitempty"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Profit         decimal.Decimal `json:"profit"`
	Units          int             `json:"units"`
	Lines          int             `json:"lines"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewSaleCompletedEvent resume la venta para el evento.
func NewSaleCompletedEvent(s *entity.Sale) SaleCompletedEvent {
	units := 0
	for _, it := range s.Items {
		units += it.Quantity
	}
	return SaleCompletedEvent{
		SaleID:         s.ID,
		BranchID:       s.BranchID,
		CashRegisterID: s.CashRegisterID,
		CurrencyID:     s.CurrencyID,
		PaymentTypeID:  s.PaymentTypeID,
		CustomerName:   s.CustomerName,
		TotalAmount:    s.TotalAmount,
		Profit:         s.Profit,
		Units:          units,
		Lines:          len(s.Items),
		CreatedAt:      s.CreatedAt,
	}
}
