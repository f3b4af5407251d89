package models

type Comment struct {
	BaseModel

	Body string `json:"body"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`

	ArticleID uint    `json:"article_id"`
	Article   Article `json:"article"`
}
