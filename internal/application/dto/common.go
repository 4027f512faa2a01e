package dto

import "github.com/jhoicas/stock-api/internal/domain"

// Valores de paginación por defecto.
const (
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage evita desbordar el offset (page-1)*limit.
	MaxPage = 1 << 24
)

// PageRequest paginación para listados. Page es 1-indexado.
type PageRequest struct {
	Limit int `query:"limit"`
	Page  int `query:"page"`
}

// Normalize aplica valores por defecto y acota Limit/Page.
// defaultLimit o maxLimit <= 0 usan DefaultLimit/MaxLimit.
func (p *PageRequest) Normalize(defaultLimit, maxLimit int) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit int `json:"limit"`
	Page  int `json:"page"`
	Total int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []domain.Violation `json:"details,omitempty"`
}
