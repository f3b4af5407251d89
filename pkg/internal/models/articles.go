package models

import "time"

type Article struct {
	BaseModel

	Slug        string `json:"slug" gorm:"uniqueIndex"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
	Language    string `json:"language"`

	Tags []Tag `json:"tags" gorm:"many2many:article_tags"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`

	Comments []Comment `json:"comments" gorm:"foreignKey:ArticleID"`
}

type Tag struct {
	BaseModel

	Name     string    `json:"name" gorm:"uniqueIndex"`
	Articles []Article `json:"articles" gorm:"many2many:article_tags"`
}

// ArticleFavorite is a plain membership row, a user can favorite one
// article at most once.
type ArticleFavorite struct {
	AccountID uint      `json:"account_id" gorm:"primaryKey"`
	ArticleID uint      `json:"article_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}
