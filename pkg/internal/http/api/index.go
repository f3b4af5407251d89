package api

import "github.com/gofiber/fiber/v2"

func MapAPIs(app *fiber.App) {
	app.Post("/users", createAccount)
	app.Post("/users/login", loginAccount)

	user := app.Group("/user")
	{
		user.Get("/", getMyAccount)
		user.Put("/", editMyAccount)
	}

	articles := app.Group("/articles")
	{
		articles.Get("/", listArticles)
		articles.Post("/", createArticle)
		articles.Get("/:slug", getArticle)
		articles.Put("/:slug", editArticle)
		articles.Delete("/:slug", deleteArticle)

		articles.Get("/:slug/comments", listComments)
		articles.Post("/:slug/comments", createComment)

		articles.Post("/:slug/favorite", favoriteArticle)
		articles.Delete("/:slug/favorite", unfavoriteArticle)
	}

	app.Get("/tags", listTags)
}
