package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/application/validation"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC    *usecase.StockUseCase
	JWTSecret  string
	JWTIssuer  string
	WriteRoles []string // roles que pueden crear y eliminar
	Logger     *logger.Logger
}

// Router registra las rutas de la API. Cada ruta declara su cadena de pre-chequeos en orden:
// autenticación, rol, validación del body y finalmente el handler.
// Solo create y delete pasan por el gate; list, get y update quedan abiertos.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	stock := api.Group("/stock", RequestLogger(log.Named("http")))
	h := NewStockHandler(deps.StockUC)
	gate := []fiber.Handler{
		AuthMiddleware(deps.JWTSecret, deps.JWTIssuer),
		RequireRole(deps.WriteRoles...),
	}

	stock.Get("/", h.List)
	stock.Get("/:id", h.GetByID)
	stock.Post("/", chain(gate, ValidateBody(validation.CreateStockSchema), h.Create)...)
	stock.Patch("/:id", ValidateBody(validation.UpdateStockSchema), h.Update)
	stock.Delete("/:id", chain(gate, h.Delete)...)
}

func chain(pre []fiber.Handler, rest ...fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(pre)+len(rest))
	out = append(out, pre...)
	return append(out, rest...)
}
