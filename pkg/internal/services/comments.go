package services

import (
	"github.com/inkwellhq/inkwell/pkg/internal/database"
	"github.com/inkwellhq/inkwell/pkg/internal/models"
	"github.com/samber/lo"
)

func NewComment(item models.Article, author models.Account, body string) (models.Comment, error) {
	comment := models.Comment{
		Body:      body,
		AuthorID:  author.ID,
		ArticleID: item.ID,
	}

	if err := database.C.Create(&comment).Error; err != nil {
		return comment, err
	}

	comment.Author = author
	return comment, nil
}

func ListComments(item models.Article) ([]models.Comment, error) {
	var comments []models.Comment
	if err := database.C.
		Where("article_id = ?", item.ID).
		Preload("Author").
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return comments, err
	}

	return comments, nil
}

func RenderComment(item models.Comment) models.CommentView {
	return models.CommentView{
		ID:        item.ID,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
		Body:      item.Body,
		Author:    item.Author.ToProfileView(),
	}
}

func RenderCommentList(items []models.Comment) []models.CommentView {
	return lo.Map(items, func(item models.Comment, index int) models.CommentView {
		return RenderComment(item)
	})
}
