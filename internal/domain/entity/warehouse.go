package entity

import "time"

// Warehouse bodega donde se almacena stock.
type Warehouse struct {
	ID        string
	BranchID  string
	Name      string
	Address   string
	IsActive  bool
	CreatedAt time.Time
}

// Supplier proveedor de compras.
type Supplier struct {
	ID      string
	Name    string
	Phone   string
	Email   string
	Address string
}
