package entity

import "time"

// ProductStock cantidad de un producto en una bodega. Único por (producto, bodega);
// una fila ausente equivale a cantidad 0 y se crea en el primer movimiento.
type ProductStock struct {
	ProductID   string
	WarehouseID string
	Quantity    int
	UpdatedAt   time.Time
}
