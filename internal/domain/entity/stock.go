package entity

import "time"

// Stock representa la cantidad disponible de un ítem vinculado a una relación externa (producto/proveedor).
// ID y RelationID se fijan al crear; Quantity es el único campo que cambia después.
type Stock struct {
	ID         string
	Name       string
	Quantity   int64
	RelationID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StockPage es un corte acotado de la colección (derivado, no persistido).
// Page es 1-indexado.
type StockPage struct {
	Items []*Stock
	Limit int
	Page  int
	Total int
}

// Offset devuelve el desplazamiento equivalente a Limit/Page.
func (p StockPage) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
