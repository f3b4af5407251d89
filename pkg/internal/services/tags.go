package services

import (
	"context"
	"errors"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	localCache "github.com/inkwellhq/inkwell/pkg/internal/cache"
	"github.com/inkwellhq/inkwell/pkg/internal/database"
	"github.com/inkwellhq/inkwell/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const tagNamesCacheKey = "tag-names-query"

// GetTagOrCreate looks a tag up by its exact name, creating it on first
// reference. A duplicated-key error means another request created the tag
// between our lookup and insert, so the fresh row is fetched instead.
func GetTagOrCreate(name string) (models.Tag, error) {
	var tag models.Tag
	if err := database.C.Where("name = ?", name).First(&tag).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return tag, err
		}

		tag = models.Tag{Name: name}
		if err := database.C.Create(&tag).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				err = database.C.Where("name = ?", name).First(&tag).Error
				return tag, err
			}
			return tag, err
		}

		InvalidateTagNamesCache()
	}
	return tag, nil
}

// EnsureTags resolves every name into a registry tag, deduplicating the
// input. Membership only, input order is not preserved.
func EnsureTags(names []string) ([]models.Tag, error) {
	names = lo.Uniq(names)

	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := GetTagOrCreate(name)
		if err != nil {
			return tags, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func ListTagNames() ([]string, error) {
	marshal := marshaler.New(cache.New[any](localCache.S))
	ctx := context.Background()

	if hit, err := marshal.Get(ctx, tagNamesCacheKey, new([]string)); err == nil {
		return *hit.(*[]string), nil
	}

	var names []string
	if err := database.C.Model(&models.Tag{}).
		Order("name ASC").
		Pluck("name", &names).Error; err != nil {
		return names, err
	}

	_ = marshal.Set(ctx, tagNamesCacheKey, names, store.WithExpiration(5*time.Minute))

	return names, nil
}

func InvalidateTagNamesCache() {
	marshal := marshaler.New(cache.New[any](localCache.S))
	_ = marshal.Delete(context.Background(), tagNamesCacheKey)
}
