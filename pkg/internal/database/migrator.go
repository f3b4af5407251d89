package database

import (
	"github.com/inkwellhq/inkwell/pkg/internal/models"
	"gorm.io/gorm"
)

// AutoMaintainRange lists the soft-deleting models that the periodic
// cleanup task is allowed to purge.
var AutoMaintainRange = []any{
	&models.Account{},
	&models.Tag{},
	&models.Article{},
	&models.Comment{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.ArticleFavorite{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
