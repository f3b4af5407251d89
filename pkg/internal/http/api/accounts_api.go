package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwellhq/inkwell/pkg/internal/http/exts"
	"github.com/inkwellhq/inkwell/pkg/internal/models"
	"github.com/inkwellhq/inkwell/pkg/internal/security"
	"github.com/inkwellhq/inkwell/pkg/internal/services"
)

func createAccount(c *fiber.Ctx) error {
	var data struct {
		User struct {
			Username string `json:"username" validate:"required,min=3,max=64"`
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=6,max=128"`
		} `json:"user"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err := services.NewAccount(data.User.Username, data.User.Email, data.User.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	token, err := security.IssueToken(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user.ToUserView(token),
	})
}

func loginAccount(c *fiber.Ctx) error {
	var data struct {
		User struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
		} `json:"user"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err := services.AuthenticateAccount(data.User.Email, data.User.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrAccountSuspended) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	token, err := security.IssueToken(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"user": user.ToUserView(token),
	})
}

func getMyAccount(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	token, err := security.IssueToken(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"user": user.ToUserView(token),
	})
}

func editMyAccount(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		User struct {
			Username *string `json:"username" validate:"omitempty,min=3,max=64"`
			Email    *string `json:"email" validate:"omitempty,email"`
			Password *string `json:"password" validate:"omitempty,min=6,max=128"`
			Bio      *string `json:"bio"`
			Image    *string `json:"image" validate:"omitempty,url"`
		} `json:"user"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err := services.EditAccount(user, services.AccountChanges{
		Name:     data.User.Username,
		Email:    data.User.Email,
		Password: data.User.Password,
		Bio:      data.User.Bio,
		Avatar:   data.User.Image,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	token, err := security.IssueToken(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"user": user.ToUserView(token),
	})
}
