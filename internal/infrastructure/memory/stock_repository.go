// Package memory implementa StockRepository en memoria (tests y STORAGE_DRIVER=memory).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo guarda los registros en un mapa y conserva el orden de inserción.
// Un único mutex serializa las escrituras, por lo que UpdateQuantity y Delete son atómicos por id.
type StockRepo struct {
	mu    sync.RWMutex
	byID  map[string]*entity.Stock
	order []string
	now   func() time.Time
}

// NewStockRepository construye un repositorio vacío.
func NewStockRepository() *StockRepo {
	return &StockRepo{
		byID: make(map[string]*entity.Stock),
		now:  time.Now,
	}
}

// FindByID devuelve una copia del registro o (nil, nil) si no existe.
func (r *StockRepo) FindByID(ctx context.Context, id string) (*entity.Stock, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.RepositoryError{Op: "find stock", Err: err}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// FindPage devuelve la página solicitada (1-indexada) en orden de inserción.
func (r *StockRepo) FindPage(ctx context.Context, limit, page int) (*entity.StockPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.RepositoryError{Op: "find stock page", Err: err}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := &entity.StockPage{Items: []*entity.Stock{}, Limit: limit, Page: page, Total: len(r.order)}
	start := out.Offset()
	if limit <= 0 || start >= len(r.order) {
		return out, nil
	}
	end := start + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	for _, id := range r.order[start:end] {
		cp := *r.byID[id]
		out.Items = append(out.Items, &cp)
	}
	return out, nil
}

// Insert asigna un UUID nuevo y guarda el registro.
func (r *StockRepo) Insert(ctx context.Context, stock *entity.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return &domain.RepositoryError{Op: "insert stock", Err: err}
	}
	id := uuid.New().String()
	for _, exists := r.byID[id]; exists; _, exists = r.byID[id] {
		id = uuid.New().String()
	}
	now := r.now()
	stock.ID = id
	stock.CreatedAt = now
	stock.UpdatedAt = now
	cp := *stock
	r.byID[id] = &cp
	r.order = append(r.order, id)
	return nil
}

// UpdateQuantity reemplaza la cantidad bajo el lock de escritura.
func (r *StockRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) (*entity.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, &domain.RepositoryError{Op: "update stock quantity", Err: err}
	}
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	s.Quantity = quantity
	s.UpdatedAt = r.now()
	cp := *s
	return &cp, nil
}

// Delete elimina el registro; false si no existía.
func (r *StockRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, &domain.RepositoryError{Op: "delete stock", Err: err}
	}
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}
