package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/inkwellhq/inkwell/pkg/internal/services"
)

func listTags(c *fiber.Ctx) error {
	names, err := services.ListTagNames()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"tags": names,
	})
}
