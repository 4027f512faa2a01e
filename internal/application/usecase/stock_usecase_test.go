package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/infrastructure/memory"
)

const unknownID = "7d9f4c2e-1b3a-4e5f-9a8b-0c1d2e3f4a5b"

func newUseCase() *usecase.StockUseCase {
	return usecase.NewStockUseCase(memory.NewStockRepository(), usecase.StockConfig{DefaultLimit: 20, MaxLimit: 100})
}

// StockRepoMock para verificar que ciertos caminos no llegan al repositorio.
type StockRepoMock struct{ mock.Mock }

func (m *StockRepoMock) FindByID(ctx context.Context, id string) (*entity.Stock, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Stock)
	return s, args.Error(1)
}

func (m *StockRepoMock) FindPage(ctx context.Context, limit, page int) (*entity.StockPage, error) {
	args := m.Called(ctx, limit, page)
	p, _ := args.Get(0).(*entity.StockPage)
	return p, args.Error(1)
}

func (m *StockRepoMock) Insert(ctx context.Context, s *entity.Stock) error {
	return m.Called(ctx, s).Error(0)
}

func (m *StockRepoMock) UpdateQuantity(ctx context.Context, id string, q int64) (*entity.Stock, error) {
	args := m.Called(ctx, id, q)
	s, _ := args.Get(0).(*entity.Stock)
	return s, args.Error(1)
}

func (m *StockRepoMock) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestEscenarioCompleto_CrearActualizarBorrar(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	created, err := uc.CreateStock(ctx, dto.CreateStockRequest{Name: "Widget", Quantity: 5, RelationID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, int64(5), created.Quantity)
	assert.Equal(t, "r1", created.RelationID)
	require.NotEmpty(t, created.ID)

	updated, err := uc.UpdateStock(ctx, created.ID, dto.UpdateStockRequest{Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated.Quantity)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, "r1", updated.RelationID)

	deleted, err := uc.DeleteStock(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = uc.GetStock(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateStock_IDsUnicos(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		out, err := uc.CreateStock(ctx, dto.CreateStockRequest{Name: "x", Quantity: int64(i), RelationID: "r"})
		require.NoError(t, err)
		assert.False(t, seen[out.ID])
		seen[out.ID] = true
	}
}

func TestCreateStock_ReportaTodasLasViolaciones(t *testing.T) {
	repo := new(StockRepoMock)
	uc := usecase.NewStockUseCase(repo, usecase.StockConfig{})

	_, err := uc.CreateStock(context.Background(), dto.CreateStockRequest{Name: " ", Quantity: -1, RelationID: ""})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateStock_PropagaErrorDeRepositorio(t *testing.T) {
	repo := new(StockRepoMock)
	repoErr := &domain.RepositoryError{Op: "insert stock", Err: errors.New("conexión rechazada")}
	repo.On("Insert", mock.Anything, mock.Anything).Return(repoErr).Once()
	uc := usecase.NewStockUseCase(repo, usecase.StockConfig{})

	out, err := uc.CreateStock(context.Background(), dto.CreateStockRequest{Name: "a", Quantity: 1, RelationID: "r"})

	assert.Nil(t, out)
	assert.Same(t, repoErr, err)
	repo.AssertExpectations(t)
}

func TestUpdateStock_CantidadNegativaNoEscribe(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	created, err := uc.CreateStock(ctx, dto.CreateStockRequest{Name: "Widget", Quantity: 5, RelationID: "r1"})
	require.NoError(t, err)

	_, err = uc.UpdateStock(ctx, created.ID, dto.UpdateStockRequest{Quantity: -2})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Violations[0].Field)

	got, err := uc.GetStock(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity)
}

func TestUpdateStock_NegativaNoTocaRepositorio(t *testing.T) {
	repo := new(StockRepoMock)
	uc := usecase.NewStockUseCase(repo, usecase.StockConfig{})

	_, err := uc.UpdateStock(context.Background(), unknownID, dto.UpdateStockRequest{Quantity: -1})

	require.Error(t, err)
	repo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStock_Inexistente(t *testing.T) {
	_, err := newUseCase().UpdateStock(context.Background(), unknownID, dto.UpdateStockRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetYDelete_NuncaCreado(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	_, err := uc.GetStock(ctx, unknownID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.DeleteStock(ctx, unknownID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteStock_DobleBorrado(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	created, err := uc.CreateStock(ctx, dto.CreateStockRequest{Name: "a", Quantity: 1, RelationID: "r"})
	require.NoError(t, err)

	_, err = uc.DeleteStock(ctx, created.ID)
	require.NoError(t, err)

	_, err = uc.DeleteStock(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIDMalFormado_EsNotFoundSinConsultar(t *testing.T) {
	repo := new(StockRepoMock)
	uc := usecase.NewStockUseCase(repo, usecase.StockConfig{})
	ctx := context.Background()

	_, err := uc.GetStock(ctx, "no-es-un-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.UpdateStock(ctx, "123", dto.UpdateStockRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.DeleteStock(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	repo.AssertExpectations(t)
	assert.Empty(t, repo.Calls)
}

func TestIDFormasAlternativas_SeNormalizan(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	created, err := uc.CreateStock(ctx, dto.CreateStockRequest{Name: "Widget", Quantity: 5, RelationID: "r"})
	require.NoError(t, err)

	upper := strings.ToUpper(created.ID)
	forms := []string{
		upper,
		"{" + upper + "}",
		strings.ReplaceAll(created.ID, "-", ""),
		"urn:uuid:" + created.ID,
	}
	for _, id := range forms {
		got, err := uc.GetStock(ctx, id)
		require.NoError(t, err, id)
		assert.Equal(t, created.ID, got.ID)
	}

	updated, err := uc.UpdateStock(ctx, "{"+upper+"}", dto.UpdateStockRequest{Quantity: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(9), updated.Quantity)

	res, err := uc.DeleteStock(ctx, upper)
	require.NoError(t, err)
	assert.Equal(t, created.ID, res.ID)

	_, err = uc.GetStock(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIDFormasAlternativas_LlegaCanonicoAlRepositorio(t *testing.T) {
	const id = "7d9f4c2e-1b3a-4e5f-9a8b-0c1d2e3f4a5b"
	repo := new(StockRepoMock)
	repo.On("Delete", mock.Anything, id).Return(true, nil).Once()
	uc := usecase.NewStockUseCase(repo, usecase.StockConfig{})

	_, err := uc.DeleteStock(context.Background(), "urn:uuid:"+strings.ToUpper(id))
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListStock_VacioNoEsError(t *testing.T) {
	out, err := newUseCase().ListStock(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	assert.Equal(t, 20, out.Page.Limit)
	assert.Equal(t, 1, out.Page.Page)
	assert.Equal(t, 0, out.Page.Total)
}

func TestListStock_PaginasDisjuntas(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	all := map[string]bool{}
	for _, n := range []string{"a", "b", "c"} {
		out, err := uc.CreateStock(ctx, dto.CreateStockRequest{Name: n, Quantity: 1, RelationID: "r"})
		require.NoError(t, err)
		all[out.ID] = true
	}

	p1, err := uc.ListStock(ctx, dto.PageRequest{Limit: 2, Page: 1})
	require.NoError(t, err)
	p2, err := uc.ListStock(ctx, dto.PageRequest{Limit: 2, Page: 2})
	require.NoError(t, err)

	union := map[string]bool{}
	for _, it := range append(p1.Items, p2.Items...) {
		assert.False(t, union[it.ID], "las páginas deben ser disjuntas")
		union[it.ID] = true
	}
	assert.Equal(t, all, union)
	assert.Equal(t, 3, p1.Page.Total)
}

func TestListStock_NormalizaParametros(t *testing.T) {
	repo := new(StockRepoMock)
	empty := &entity.StockPage{Items: []*entity.Stock{}}
	repo.On("FindPage", mock.Anything, 10, 1).Return(empty, nil).Once()
	repo.On("FindPage", mock.Anything, 50, 1).Return(empty, nil).Once()
	uc := usecase.NewStockUseCase(repo, usecase.StockConfig{DefaultLimit: 10, MaxLimit: 50})
	ctx := context.Background()

	out, err := uc.ListStock(ctx, dto.PageRequest{Limit: -5, Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Page.Limit)
	assert.Equal(t, 1, out.Page.Page)

	out, err = uc.ListStock(ctx, dto.PageRequest{Limit: 1000, Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 50, out.Page.Limit)

	repo.AssertExpectations(t)
}

func TestListStock_PropagaErrorDeRepositorio(t *testing.T) {
	repo := new(StockRepoMock)
	repo.On("FindPage", mock.Anything, 20, 1).Return(nil, &domain.RepositoryError{Op: "list stock", Err: errors.New("timeout")})
	uc := usecase.NewStockUseCase(repo, usecase.StockConfig{})

	_, err := uc.ListStock(context.Background(), dto.PageRequest{})
	var repoErr *domain.RepositoryError
	assert.ErrorAs(t, err, &repoErr)
}
