// seed carga registros de stock desde un archivo JSON, todo en una sola transacción.
//
// Uso: go run ./cmd/seed [ruta/stock.json]
// Por defecto busca stock_seed.json en el directorio actual. Formato:
//
//	[{"name": "Widget", "quantity": 5, "relationId": "r1"}, ...]
//
// Cada elemento pasa por el mismo esquema de validación que POST /api/stock.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/application/validation"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-api/pkg/config"
	"github.com/jhoicas/stock-api/pkg/logger"
)

func main() {
	path := "stock_seed.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	items, err := readSeed(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("leer seed")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	stockCfg := usecase.StockConfig{DefaultLimit: cfg.Stock.DefaultLimit, MaxLimit: cfg.Stock.MaxLimit}
	var created int
	err = postgres.NewTxRunner(pool).Run(ctx, func(stockRepo repository.StockRepository) error {
		uc := usecase.NewStockUseCase(stockRepo, stockCfg)
		for i, raw := range items {
			values, err := validation.Validate(validation.CreateStockSchema, raw)
			if err != nil {
				return fmt.Errorf("elemento %d: %w", i, err)
			}
			out, err := uc.CreateStock(ctx, validation.CreateStockInput(values))
			if err != nil {
				return fmt.Errorf("elemento %d: %w", i, err)
			}
			log.Debug().Str("id", out.ID).Str("name", out.Name).Msg("stock creado")
			created++
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed abortado, no se insertó nada")
	}
	log.Info().Int("created", created).Str("file", path).Msg("seed completado")
}

func readSeed(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.UseNumber()
	var items []map[string]any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decodificar JSON: %w", err)
	}
	return items, nil
}
