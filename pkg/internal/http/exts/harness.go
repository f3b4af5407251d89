package exts

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/inkwellhq/inkwell/pkg/internal/models"
)

var validation = validator.New(validator.WithRequiredStructEnabled())

func BindAndValidate(c *fiber.Ctx, data any) error {
	if err := c.BodyParser(data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	} else if err := validation.Struct(data); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			messages := make([]string, 0, len(errs))
			for _, item := range errs {
				messages = append(messages, fmt.Sprintf("%s is invalid on rule %s", item.Field(), item.Tag()))
			}
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unable to validate request: %v", messages))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return nil
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "you have to be authenticated to do this")
	}

	return nil
}
