package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// StockRepository define el puerto de persistencia para Stock (DIP).
// FindByID y UpdateQuantity devuelven (nil, nil) cuando el registro no existe.
// UpdateQuantity y Delete deben ser atómicos por id.
type StockRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Stock, error)
	FindPage(ctx context.Context, limit, page int) (*entity.StockPage, error)
	// Insert asigna ID, CreatedAt y UpdatedAt sobre el registro recibido.
	Insert(ctx context.Context, stock *entity.Stock) error
	UpdateQuantity(ctx context.Context, id string, quantity int64) (*entity.Stock, error)
	// Delete devuelve false si no había registro con ese id.
	Delete(ctx context.Context, id string) (bool, error)
}
