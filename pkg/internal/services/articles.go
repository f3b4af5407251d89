package services

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkwellhq/inkwell/pkg/internal/database"
	"github.com/inkwellhq/inkwell/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var slugInvalidRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL-safe base slug of a title: lowercase, runs of
// non-alphanumeric characters collapse into single hyphens, edges trimmed.
func Slugify(title string) string {
	slug := slugInvalidRuns.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

func nextSlugCandidate(title string, attempt int) string {
	if attempt == 0 {
		return Slugify(title)
	}
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return Slugify(title) + "-" + suffix
}

func FilterArticleWithAuthor(tx *gorm.DB, name string) *gorm.DB {
	return tx.Joins("JOIN accounts ON accounts.id = articles.author_id").
		Where("accounts.name = ?", name)
}

func FilterArticleWithTag(tx *gorm.DB, name string) *gorm.DB {
	return tx.Joins("JOIN article_tags ON articles.id = article_tags.article_id").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("tags.name = ?", name).
		Distinct("articles.*")
}

func FilterArticleWithFavoritedBy(tx *gorm.DB, name string) *gorm.DB {
	return tx.Joins("JOIN article_favorites ON articles.id = article_favorites.article_id").
		Joins("JOIN accounts fans ON fans.id = article_favorites.account_id").
		Where("fans.name = ?", name)
}

func PreloadArticleGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Tags").
		Preload("Author")
}

func GetArticle(tx *gorm.DB, slug string) (models.Article, error) {
	var item models.Article
	if err := PreloadArticleGeneral(tx).
		Where("slug = ?", slug).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

func CountArticle(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Article{}).Distinct("articles.id").Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListArticle(tx *gorm.DB, take int, offset int, order any) ([]*models.Article, error) {
	if take > 100 {
		take = 100
	}

	var items []*models.Article
	if err := PreloadArticleGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

// NewArticle persists a fresh article under a collision-free slug. The
// insert itself is the existence check: a duplicated-key error from the
// unique slug index triggers another round with a random suffix, so two
// racing creations with the same title cannot slip past each other.
func NewArticle(author models.Account, item models.Article, tagNames []string) (models.Article, error) {
	tags, err := EnsureTags(tagNames)
	if err != nil {
		return item, err
	}

	item.AuthorID = author.ID
	item.Tags = tags
	item.Language = DetectLanguage(item.Body)

	for attempt := 0; ; attempt++ {
		item.Slug = nextSlugCandidate(item.Title, attempt)
		if err := database.C.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return item, err
		}
		break
	}

	item.Author = author

	log.Debug().Uint("id", item.ID).Str("slug", item.Slug).Msg("New article was created.")
	return item, nil
}

type ArticleChanges struct {
	Title       *string
	Description *string
	Body        *string
	TagNames    *[]string
}

// EditArticle applies the provided fields. A title change regenerates the
// slug from scratch through the same collision-resolution loop; a provided
// tag list replaces the association wholesale.
func EditArticle(item models.Article, changes ArticleChanges) (models.Article, error) {
	retitled := changes.Title != nil && *changes.Title != item.Title

	if changes.Title != nil {
		item.Title = *changes.Title
	}
	if changes.Description != nil {
		item.Description = *changes.Description
	}
	if changes.Body != nil {
		item.Body = *changes.Body
		item.Language = DetectLanguage(item.Body)
	}

	if changes.TagNames != nil {
		tags, err := EnsureTags(*changes.TagNames)
		if err != nil {
			return item, err
		}
		if err := database.C.Model(&item).Association("Tags").Replace(tags); err != nil {
			return item, err
		}
		item.Tags = tags
	}

	for attempt := 0; ; attempt++ {
		if retitled {
			item.Slug = nextSlugCandidate(item.Title, attempt)
		}
		if err := database.C.Omit(clause.Associations).Save(&item).Error; err != nil {
			if retitled && errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return item, err
		}
		break
	}

	return item, nil
}

// DeleteArticle removes an article together with its comments and favorite
// rows in one transaction. Tags and accounts stay untouched.
func DeleteArticle(item models.Article) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", item.ID).Delete(&models.ArticleFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", item.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

func RenderArticle(item models.Article, viewer *models.Account) models.ArticleView {
	view := models.ArticleView{
		Slug:        item.Slug,
		Title:       item.Title,
		Description: item.Description,
		Body:        item.Body,
		TagList:     renderTagList(item.Tags),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		Author:      item.Author.ToProfileView(),
	}

	view.FavoritesCount = CountArticleFavorites(item.ID)
	if viewer != nil {
		view.Favorited = IsArticleFavorited(item.ID, viewer.ID)
	}

	return view
}

// RenderArticleList shapes a page of articles, loading favorite counts and
// the viewer's memberships in two batched queries instead of one pair per
// row.
func RenderArticleList(items []*models.Article, viewer *models.Account) []models.ArticleView {
	idx := lo.Map(items, func(item *models.Article, index int) uint {
		return item.ID
	})

	counts := BatchCountArticleFavorites(idx)

	var favorited map[uint]bool
	if viewer != nil {
		favorited = BatchCheckArticleFavorited(idx, viewer.ID)
	}

	out := make([]models.ArticleView, 0, len(items))
	for _, item := range items {
		view := models.ArticleView{
			Slug:        item.Slug,
			Title:       item.Title,
			Description: item.Description,
			Body:        item.Body,
			TagList:     renderTagList(item.Tags),
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
			Author:      item.Author.ToProfileView(),
		}
		view.FavoritesCount = counts[item.ID]
		if viewer != nil {
			view.Favorited = favorited[item.ID]
		}
		out = append(out, view)
	}

	return out
}

func renderTagList(tags []models.Tag) []string {
	names := lo.Map(tags, func(item models.Tag, index int) string {
		return item.Name
	})
	sort.Strings(names)
	return names
}

// DoAutoDatabaseCleanup purges records that have been soft-deleted for over
// a month.
func DoAutoDatabaseCleanup() {
	deadline := time.Now().Add(-30 * 24 * time.Hour)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := database.C.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at <= ?", deadline).
			Delete(model)
		count += tx.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Entire database cleaned up.")
}
