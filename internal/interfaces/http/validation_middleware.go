package http

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/validation"
)

// LocalValidated key de c.Locals con los validation.Values ya aceptados.
const LocalValidated = "validated"

// ValidateBody decodifica el body JSON como objeto y lo evalúa contra el esquema.
// Los números se conservan como json.Number para no perder precisión.
func ValidateBody(schema validation.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := map[string]any{}
		if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.UseNumber()
			if err := dec.Decode(&payload); err != nil || payload == nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido: se espera un objeto JSON"})
			}
		}
		values, err := validation.Validate(schema, payload)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalValidated, values)
		return c.Next()
	}
}

// GetValidated devuelve los valores aceptados por ValidateBody.
func GetValidated(c *fiber.Ctx) validation.Values {
	v, _ := c.Locals(LocalValidated).(validation.Values)
	return v
}
