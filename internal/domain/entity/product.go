package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un libro del catálogo.
// CostPrice es el último costo unitario recibido (se sobrescribe en cada recepción de compra).
type Product struct {
	ID         string
	Name       string
	NameAlt    string // nombre en segundo idioma
	ISBN       string
	Barcode    string
	CategoryID string
	AuthorID   string
	CostPrice  decimal.Decimal
	IsActive   bool
	Prices     []ProductPrice
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductPrice precio de venta de un producto en una moneda. Único por (producto, moneda).
type ProductPrice struct {
	ProductID  string
	CurrencyID string
	Price      decimal.Decimal
}

// PriceFor devuelve el precio configurado para la moneda, si existe.
func (p *Product) PriceFor(currencyID string) (decimal.Decimal, bool) {
	for _, pr := range p.Prices {
		if pr.CurrencyID == currencyID {
			return pr.Price, true
		}
	}
	return decimal.Zero, false
}

// DisplayName nombre para mensajes de error y recibos.
func (p *Product) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.NameAlt
}
