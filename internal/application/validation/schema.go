// Package validation define los esquemas declarativos de entrada para stock y su evaluación
// estructural sobre payloads sin tipo (map[string]any decodificado desde JSON).
package validation

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
)

// FieldKind tipo lógico de un campo del esquema.
type FieldKind int

const (
	// KindText texto no vacío.
	KindText FieldKind = iota
	// KindQuantity entero no negativo, coercible desde número o texto numérico.
	KindQuantity
)

// Field un campo requerido del esquema.
type Field struct {
	Name string
	Kind FieldKind
}

// Schema lista ordenada de campos requeridos. Los campos no declarados se ignoran.
type Schema struct {
	Name   string
	Fields []Field
}

// Values resultado validado: texto como string, cantidades como int64.
type Values map[string]any

var (
	// CreateStockSchema body de POST /stock.
	CreateStockSchema = Schema{
		Name: "create_stock",
		Fields: []Field{
			{Name: "name", Kind: KindText},
			{Name: "quantity", Kind: KindQuantity},
			{Name: "relationId", Kind: KindText},
		},
	}

	// UpdateStockSchema body de PATCH /stock/:id. Solo quantity; name y relationId no se pueden cambiar.
	UpdateStockSchema = Schema{
		Name: "update_stock",
		Fields: []Field{
			{Name: "quantity", Kind: KindQuantity},
		},
	}
)

var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// Cotas sobre el texto y el exponente decimal: se comprueban antes de reescalar,
// que con exponentes grandes crece sin límite.
const (
	maxQuantityText = 32
	maxExponent     = 20
)

// Validate evalúa el payload contra el esquema y reporta todas las violaciones juntas.
// No modifica el payload.
func Validate(schema Schema, payload map[string]any) (Values, error) {
	out := make(Values, len(schema.Fields))
	var violations []domain.Violation
	for _, f := range schema.Fields {
		raw, ok := payload[f.Name]
		if !ok || raw == nil {
			violations = append(violations, domain.Violation{Field: f.Name, Message: "es requerido"})
			continue
		}
		switch f.Kind {
		case KindText:
			s, msg := coerceText(raw)
			if msg != "" {
				violations = append(violations, domain.Violation{Field: f.Name, Message: msg})
				continue
			}
			out[f.Name] = s
		case KindQuantity:
			q, msg := CoerceQuantity(raw)
			if msg != "" {
				violations = append(violations, domain.Violation{Field: f.Name, Message: msg})
				continue
			}
			out[f.Name] = q
		}
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Payload: payload, Violations: violations}
	}
	return out, nil
}

func coerceText(raw any) (string, string) {
	s, ok := raw.(string)
	if !ok {
		return "", "debe ser texto"
	}
	if strings.TrimSpace(s) == "" {
		return "", "no puede estar vacío"
	}
	return s, ""
}

// CoerceQuantity convierte números JSON o texto numérico a un entero no negativo.
// Devuelve un mensaje no vacío si el valor no es aceptable.
func CoerceQuantity(raw any) (int64, string) {
	var d decimal.Decimal
	var err error
	switch v := raw.(type) {
	case json.Number:
		if len(v) > maxQuantityText {
			return 0, "fuera de rango"
		}
		d, err = decimal.NewFromString(v.String())
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, "debe ser numérico"
		}
		if len(s) > maxQuantityText {
			return 0, "fuera de rango"
		}
		d, err = decimal.NewFromString(s)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, "debe ser numérico"
		}
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	default:
		return 0, "debe ser numérico"
	}
	if err != nil {
		return 0, "debe ser numérico"
	}
	if d.IsNegative() {
		return 0, "no puede ser negativo"
	}
	if d.IsZero() {
		return 0, ""
	}
	if d.Exponent() > maxExponent {
		return 0, "fuera de rango"
	}
	if d.Exponent() < -maxExponent {
		return 0, "debe ser un entero"
	}
	if !d.IsInteger() {
		return 0, "debe ser un entero"
	}
	if d.GreaterThan(maxQuantity) {
		return 0, "fuera de rango"
	}
	return d.IntPart(), ""
}

// CreateStockInput tipa los valores ya validados con CreateStockSchema.
func CreateStockInput(v Values) dto.CreateStockRequest {
	name, _ := v["name"].(string)
	qty, _ := v["quantity"].(int64)
	rel, _ := v["relationId"].(string)
	return dto.CreateStockRequest{Name: name, Quantity: qty, RelationID: rel}
}

// UpdateStockInput tipa los valores ya validados con UpdateStockSchema.
func UpdateStockInput(v Values) dto.UpdateStockRequest {
	qty, _ := v["quantity"].(int64)
	return dto.UpdateStockRequest{Quantity: qty}
}
