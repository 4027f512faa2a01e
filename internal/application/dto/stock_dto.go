package dto

import "time"

// CreateStockRequest entrada para crear un registro de stock.
type CreateStockRequest struct {
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
	RelationID string `json:"relationId"`
}

// UpdateStockRequest entrada para PATCH: solo la cantidad.
type UpdateStockRequest struct {
	Quantity int64 `json:"quantity"`
}

// StockResponse salida de un registro de stock.
type StockResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Quantity   int64     `json:"quantity"`
	RelationID string    `json:"relationId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// StockListResponse lista paginada de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// DeleteStockResponse confirmación de borrado.
type DeleteStockResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
