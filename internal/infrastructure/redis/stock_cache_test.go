package redis_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/infrastructure/memory"
	stockredis "github.com/jhoicas/stock-api/internal/infrastructure/redis"
)

// fakeRedis implementa solo Get/Set/Del; el resto de goredis.Cmdable queda sin implementar.
type fakeRedis struct {
	goredis.Cmdable
	mu      sync.Mutex
	data    map[string][]byte
	failAll bool
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: map[string][]byte{}} }

var errRedisDown = errors.New("redis caído")

func (f *fakeRedis) Get(ctx context.Context, key string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return goredis.NewStringResult("", errRedisDown)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *goredis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return goredis.NewStatusResult("", errRedisDown)
	}
	f.data[key] = value.([]byte)
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return goredis.NewIntResult(0, errRedisDown)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func (f *fakeRedis) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

func TestCachedStockRepo_InsertPrecargaYUpdateReemplaza(t *testing.T) {
	ctx := context.Background()
	cache := newFakeRedis()
	repo := stockredis.NewCachedStockRepository(memory.NewStockRepository(), cache, time.Minute, nil)

	s := &entity.Stock{Name: "Widget", Quantity: 5, RelationID: "r1"}
	require.NoError(t, repo.Insert(ctx, s))
	assert.True(t, cache.has(stockredis.StockKey(s.ID)))

	updated, err := repo.UpdateQuantity(ctx, s.ID, 3)
	require.NoError(t, err)
	require.NotNil(t, updated)

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity)
	assert.Equal(t, "Widget", got.Name)
}

func TestCachedStockRepo_DeleteInvalida(t *testing.T) {
	ctx := context.Background()
	cache := newFakeRedis()
	repo := stockredis.NewCachedStockRepository(memory.NewStockRepository(), cache, time.Minute, nil)

	s := &entity.Stock{Name: "Widget", Quantity: 5, RelationID: "r1"}
	require.NoError(t, repo.Insert(ctx, s))

	deleted, err := repo.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, cache.has(stockredis.StockKey(s.ID)))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCachedStockRepo_MissLeeDelRepositorio(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStockRepository()
	s := &entity.Stock{Name: "Bolt", Quantity: 1, RelationID: "r2"}
	require.NoError(t, inner.Insert(ctx, s))

	cache := newFakeRedis()
	repo := stockredis.NewCachedStockRepository(inner, cache, time.Minute, nil)

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.ID, got.ID)
	assert.True(t, cache.has(stockredis.StockKey(s.ID)), "el miss debe poblar la caché")
}

func TestCachedStockRepo_RedisCaidoNoRompeOperaciones(t *testing.T) {
	ctx := context.Background()
	cache := newFakeRedis()
	cache.failAll = true
	repo := stockredis.NewCachedStockRepository(memory.NewStockRepository(), cache, time.Minute, nil)

	s := &entity.Stock{Name: "Nut", Quantity: 7, RelationID: "r3"}
	require.NoError(t, repo.Insert(ctx, s))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.Quantity)

	page, err := repo.FindPage(ctx, 10, 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

// foldedRepo compara IDs sin distinguir mayúsculas, como la columna uuid de PostgreSQL.
type foldedRepo struct{ repository.StockRepository }

func (r foldedRepo) FindByID(ctx context.Context, id string) (*entity.Stock, error) {
	return r.StockRepository.FindByID(ctx, strings.ToLower(id))
}

func (r foldedRepo) UpdateQuantity(ctx context.Context, id string, q int64) (*entity.Stock, error) {
	return r.StockRepository.UpdateQuantity(ctx, strings.ToLower(id), q)
}

func (r foldedRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.StockRepository.Delete(ctx, strings.ToLower(id))
}

func TestCachedStockRepo_DeleteConIDEnMayusculasInvalida(t *testing.T) {
	ctx := context.Background()
	cache := newFakeRedis()
	repo := stockredis.NewCachedStockRepository(foldedRepo{memory.NewStockRepository()}, cache, time.Minute, nil)
	uc := usecase.NewStockUseCase(repo, usecase.StockConfig{DefaultLimit: 20, MaxLimit: 100})

	created, err := uc.CreateStock(ctx, dto.CreateStockRequest{Name: "Widget", Quantity: 5, RelationID: "r1"})
	require.NoError(t, err)
	require.True(t, cache.has(stockredis.StockKey(created.ID)))

	_, err = uc.DeleteStock(ctx, strings.ToUpper(created.ID))
	require.NoError(t, err)
	assert.False(t, cache.has(stockredis.StockKey(created.ID)))

	_, err = uc.GetStock(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
