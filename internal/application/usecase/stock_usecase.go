package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// StockConfig límites de paginación del listado.
type StockConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// StockUseCase casos de uso CRUD para stock. La autorización se resuelve antes (middleware);
// aquí se re-validan los invariantes de cantidad y se delega la atomicidad al repositorio.
type StockUseCase struct {
	repo repository.StockRepository
	cfg  StockConfig
}

// NewStockUseCase construye el caso de uso con el repositorio inyectado.
func NewStockUseCase(repo repository.StockRepository, cfg StockConfig) *StockUseCase {
	return &StockUseCase{repo: repo, cfg: cfg}
}

// ListStock lista una página de stock. Una colección vacía devuelve items vacío, no error.
func (uc *StockUseCase) ListStock(ctx context.Context, in dto.PageRequest) (*dto.StockListResponse, error) {
	in.Normalize(uc.cfg.DefaultLimit, uc.cfg.MaxLimit)
	page, err := uc.repo.FindPage(ctx, in.Limit, in.Page)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(page.Items))
	for _, s := range page.Items {
		items = append(items, *toStockResponse(s))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Page: in.Page, Total: page.Total},
	}, nil
}

// GetStock obtiene un registro por ID. IDs mal formados se tratan como inexistentes.
func (uc *StockUseCase) GetStock(ctx context.Context, id string) (*dto.StockResponse, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return toStockResponse(stock), nil
}

// CreateStock persiste un nuevo registro. El ID lo asigna el repositorio.
func (uc *StockUseCase) CreateStock(ctx context.Context, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	var violations []domain.Violation
	if strings.TrimSpace(in.Name) == "" {
		violations = append(violations, domain.Violation{Field: "name", Message: "no puede estar vacío"})
	}
	if in.Quantity < 0 {
		violations = append(violations, domain.Violation{Field: "quantity", Message: "no puede ser negativo"})
	}
	if strings.TrimSpace(in.RelationID) == "" {
		violations = append(violations, domain.Violation{Field: "relationId", Message: "no puede estar vacío"})
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Payload: in, Violations: violations}
	}
	stock := &entity.Stock{
		Name:       in.Name,
		Quantity:   in.Quantity,
		RelationID: in.RelationID,
	}
	if err := uc.repo.Insert(ctx, stock); err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// UpdateStock reemplaza la cantidad de un registro existente.
func (uc *StockUseCase) UpdateStock(ctx context.Context, id string, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	if in.Quantity < 0 {
		return nil, domain.NewValidationError(in, "quantity", "no puede ser negativo")
	}
	id, ok := canonicalID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.repo.UpdateQuantity(ctx, id, in.Quantity)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return toStockResponse(stock), nil
}

// DeleteStock elimina un registro. Borrar uno inexistente devuelve ErrNotFound (no éxito silencioso).
func (uc *StockUseCase) DeleteStock(ctx context.Context, id string) (*dto.DeleteStockResponse, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, domain.ErrNotFound
	}
	return &dto.DeleteStockResponse{ID: id, Deleted: true}, nil
}

// canonicalID normaliza cualquier forma aceptada por uuid.Parse (mayúsculas, {llaves},
// sin guiones, urn:uuid:) a la canónica en minúsculas con guiones, que es la que usan
// el repositorio y las claves de caché.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:         s.ID,
		Name:       s.Name,
		Quantity:   s.Quantity,
		RelationID: s.RelationID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
