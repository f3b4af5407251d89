package services

import (
	"errors"

	"github.com/inkwellhq/inkwell/pkg/internal/database"
	"github.com/inkwellhq/inkwell/pkg/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorited = errors.New("article was already favorited")
	ErrNotFavorited     = errors.New("article was not favorited")
)

// FavoriteArticle adds the user to the favorite set. The membership row has
// a composite primary key, so a concurrent double-add resolves at the
// storage layer and surfaces as ErrAlreadyFavorited.
func FavoriteArticle(item models.Article, user models.Account) error {
	favorite := models.ArticleFavorite{
		AccountID: user.ID,
		ArticleID: item.ID,
	}

	if err := database.C.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFavorited
		}
		return err
	}

	return nil
}

func UnfavoriteArticle(item models.Article, user models.Account) error {
	tx := database.C.Delete(&models.ArticleFavorite{
		AccountID: user.ID,
		ArticleID: item.ID,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFavorited
	}

	return nil
}

func CountArticleFavorites(id uint) int64 {
	var count int64
	if err := database.C.Model(&models.ArticleFavorite{}).
		Where("article_id = ?", id).
		Count(&count).Error; err != nil {
		return 0
	}

	return count
}

func IsArticleFavorited(id, accountId uint) bool {
	var count int64
	if err := database.C.Model(&models.ArticleFavorite{}).
		Where("article_id = ? AND account_id = ?", id, accountId).
		Count(&count).Error; err != nil {
		return false
	}

	return count > 0
}

func BatchCountArticleFavorites(idx []uint) map[uint]int64 {
	var rows []struct {
		ArticleID uint
		Count     int64
	}

	out := map[uint]int64{}
	if err := database.C.Model(&models.ArticleFavorite{}).
		Select("article_id, COUNT(account_id) as count").
		Where("article_id IN ?", idx).
		Group("article_id").
		Scan(&rows).Error; err != nil {
		return out
	}

	for _, row := range rows {
		out[row.ArticleID] = row.Count
	}
	return out
}

func BatchCheckArticleFavorited(idx []uint, accountId uint) map[uint]bool {
	var rows []models.ArticleFavorite

	out := map[uint]bool{}
	if err := database.C.
		Where("article_id IN ? AND account_id = ?", idx, accountId).
		Find(&rows).Error; err != nil {
		return out
	}

	for _, row := range rows {
		out[row.ArticleID] = true
	}
	return out
}
