// Package redis implementa una caché de lectura (cache-aside) sobre cualquier StockRepository.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/pkg/logger"
)

const stockKeyPrefix = "stock:"

var _ repository.StockRepository = (*CachedStockRepo)(nil)

// CachedStockRepo cachea FindByID. La fuente de verdad es siempre el repositorio envuelto:
// un fallo de Redis se registra y la operación sigue contra el repositorio.
type CachedStockRepo struct {
	next   repository.StockRepository
	client goredis.Cmdable
	ttl    time.Duration
	log    *logger.Logger
}

// NewCachedStockRepository envuelve next con la caché.
func NewCachedStockRepository(next repository.StockRepository, client goredis.Cmdable, ttl time.Duration, log *logger.Logger) *CachedStockRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedStockRepo{next: next, client: client, ttl: ttl, log: log.Named("stock_cache")}
}

// NewClient construye el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// StockKey clave de un registro en Redis.
func StockKey(id string) string { return stockKeyPrefix + id }

// cachedStock forma serializada en Redis.
type cachedStock struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Quantity   int64     `json:"quantity"`
	RelationID string    `json:"relationId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func encodeStock(s *entity.Stock) ([]byte, error) {
	return json.Marshal(cachedStock{
		ID: s.ID, Name: s.Name, Quantity: s.Quantity, RelationID: s.RelationID,
		CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	})
}

func decodeStock(b []byte) (*entity.Stock, error) {
	var c cachedStock
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &entity.Stock{
		ID: c.ID, Name: c.Name, Quantity: c.Quantity, RelationID: c.RelationID,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}, nil
}

// FindByID busca primero en Redis y, si no está, en el repositorio (y lo guarda).
func (r *CachedStockRepo) FindByID(ctx context.Context, id string) (*entity.Stock, error) {
	b, err := r.client.Get(ctx, StockKey(id)).Bytes()
	switch {
	case err == nil:
		if s, decErr := decodeStock(b); decErr == nil {
			return s, nil
		}
		r.log.Warn().Str("id", id).Msg("entrada de caché corrupta")
	case !errors.Is(err, goredis.Nil):
		r.log.Warn().Err(err).Str("id", id).Msg("lectura de caché fallida")
	}

	s, err := r.next.FindByID(ctx, id)
	if err != nil || s == nil {
		return s, err
	}
	r.store(ctx, s)
	return s, nil
}

// FindPage no se cachea.
func (r *CachedStockRepo) FindPage(ctx context.Context, limit, page int) (*entity.StockPage, error) {
	return r.next.FindPage(ctx, limit, page)
}

// Insert persiste y precarga la caché.
func (r *CachedStockRepo) Insert(ctx context.Context, stock *entity.Stock) error {
	if err := r.next.Insert(ctx, stock); err != nil {
		return err
	}
	r.store(ctx, stock)
	return nil
}

// UpdateQuantity persiste y reemplaza la entrada; si no existe, invalida por si quedó algo viejo.
func (r *CachedStockRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) (*entity.Stock, error) {
	s, err := r.next.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		r.evict(ctx, id)
		return nil, err
	}
	if s == nil {
		r.evict(ctx, id)
		return nil, nil
	}
	r.store(ctx, s)
	return s, nil
}

// Delete persiste y elimina la entrada.
func (r *CachedStockRepo) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.next.Delete(ctx, id)
	r.evict(ctx, id)
	return deleted, err
}

func (r *CachedStockRepo) store(ctx context.Context, s *entity.Stock) {
	b, err := encodeStock(s)
	if err != nil {
		r.log.Warn().Err(err).Str("id", s.ID).Msg("serializar stock para caché")
		return
	}
	if err := r.client.Set(ctx, StockKey(s.ID), b, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("id", s.ID).Msg("escritura de caché fallida")
	}
}

func (r *CachedStockRepo) evict(ctx context.Context, id string) {
	if err := r.client.Del(ctx, StockKey(id)).Err(); err != nil {
		r.log.Warn().Err(err).Str("id", id).Msg("invalidación de caché fallida")
	}
}
