package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, name, quantity, relation_id, created_at, updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	if err := row.Scan(&s.ID, &s.Name, &s.Quantity, &s.RelationID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByID obtiene un registro por ID; (nil, nil) si no existe.
func (r *StockRepo) FindByID(ctx context.Context, id string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE id = $1`
	s, err := scanStock(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, repoErr("find stock", err)
	}
	return s, nil
}

// FindPage lista en orden de inserción (columna seq) con LIMIT/OFFSET.
func (r *StockRepo) FindPage(ctx context.Context, limit, page int) (*entity.StockPage, error) {
	out := &entity.StockPage{Items: []*entity.Stock{}, Limit: limit, Page: page}
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock`).Scan(&out.Total); err != nil {
		return nil, repoErr("count stock", err)
	}
	query := `SELECT ` + stockColumns + ` FROM stock ORDER BY seq ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, out.Offset())
	if err != nil {
		return nil, repoErr("list stock", err)
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, repoErr("scan stock", err)
		}
		out.Items = append(out.Items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr("list stock", err)
	}
	return out, nil
}

// Insert persiste un nuevo registro con un UUID generado aquí; created_at/updated_at los fija la DB.
func (r *StockRepo) Insert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock (id, name, quantity, relation_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING created_at, updated_at`
	id := uuid.New().String()
	err := r.q.QueryRow(ctx, query, id, stock.Name, stock.Quantity, stock.RelationID).
		Scan(&stock.CreatedAt, &stock.UpdatedAt)
	if err != nil {
		return repoErr("insert stock", err)
	}
	stock.ID = id
	return nil
}

// UpdateQuantity actualiza la cantidad en una sola sentencia (atómica por fila).
func (r *StockRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) (*entity.Stock, error) {
	query := `
		UPDATE stock SET quantity = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + stockColumns
	s, err := scanStock(r.q.QueryRow(ctx, query, id, quantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, repoErr("update stock quantity", err)
	}
	return s, nil
}

// Delete elimina un registro por ID; false si no existía.
func (r *StockRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock WHERE id = $1`, id)
	if err != nil {
		return false, repoErr("delete stock", err)
	}
	return cmd.RowsAffected() > 0, nil
}
