package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kitob-pos/internal/application/dto"
)

// pathID lee el parámetro :id y lo valida como UUID.
func pathID(c *fiber.Ctx) (string, error) {
	return dto.ParseID("id", c.Params("id"))
}

// queryID parámetro de consulta opcional con forma de UUID; vacío = sin filtro.
func queryID(c *fiber.Ctx, name string) (string, error) {
	v := c.Query(name)
	if v == "" {
		return "", nil
	}
	return dto.ParseID(name, v)
}
