package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwellhq/inkwell/pkg/internal/database"
	"github.com/inkwellhq/inkwell/pkg/internal/http/exts"
	"github.com/inkwellhq/inkwell/pkg/internal/models"
	"github.com/inkwellhq/inkwell/pkg/internal/services"
	"gorm.io/gorm"
)

func universalArticleFilter(c *fiber.Ctx, tx *gorm.DB) *gorm.DB {
	if len(c.Query("author")) > 0 {
		tx = services.FilterArticleWithAuthor(tx, c.Query("author"))
	}
	if len(c.Query("tag")) > 0 {
		tx = services.FilterArticleWithTag(tx, c.Query("tag"))
	}
	if len(c.Query("favorited")) > 0 {
		tx = services.FilterArticleWithFavoritedBy(tx, c.Query("favorited"))
	}

	return tx
}

func requestViewer(c *fiber.Ctx) *models.Account {
	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		return &user
	}
	return nil
}

func listArticles(c *fiber.Ctx) error {
	take := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	tx := universalArticleFilter(c, database.C.Model(&models.Article{}))

	count, err := services.CountArticle(tx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListArticle(tx, take, offset, "articles.created_at DESC")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"articles":      services.RenderArticleList(items, requestViewer(c)),
		"articlesCount": count,
	})
}

func getArticle(c *fiber.Ctx) error {
	item, err := services.GetArticle(database.C, c.Params("slug"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(fiber.Map{
		"article": services.RenderArticle(item, requestViewer(c)),
	})
}

func createArticle(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Article struct {
			Title       string   `json:"title" validate:"required,max=1024"`
			Description string   `json:"description"`
			Body        string   `json:"body" validate:"required"`
			TagList     []string `json:"tagList"`
		} `json:"article"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item := models.Article{
		Title:       data.Article.Title,
		Description: data.Article.Description,
		Body:        data.Article.Body,
	}

	item, err := services.NewArticle(user, item, data.Article.TagList)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"article": services.RenderArticle(item, &user),
	})
}

func editArticle(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Article struct {
			Title       *string   `json:"title" validate:"omitempty,max=1024"`
			Description *string   `json:"description"`
			Body        *string   `json:"body"`
			TagList     *[]string `json:"tagList"`
		} `json:"article"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.GetArticle(database.C, c.Params("slug"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "only the author can edit an article")
	}

	item, err = services.EditArticle(item, services.ArticleChanges{
		Title:       data.Article.Title,
		Description: data.Article.Description,
		Body:        data.Article.Body,
		TagNames:    data.Article.TagList,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"article": services.RenderArticle(item, &user),
	})
}

func deleteArticle(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	item, err := services.GetArticle(database.C, c.Params("slug"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "only the author can delete an article")
	}

	if err := services.DeleteArticle(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func favoriteArticle(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	item, err := services.GetArticle(database.C, c.Params("slug"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.FavoriteArticle(item, user); err != nil {
		if errors.Is(err, services.ErrAlreadyFavorited) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"article": services.RenderArticle(item, &user),
	})
}

func unfavoriteArticle(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	item, err := services.GetArticle(database.C, c.Params("slug"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.UnfavoriteArticle(item, user); err != nil {
		if errors.Is(err, services.ErrNotFavorited) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"article": services.RenderArticle(item, &user),
	})
}
