package models

import "time"

type Account struct {
	BaseModel

	Name     string  `json:"name" gorm:"uniqueIndex"`
	Email    string  `json:"email" gorm:"uniqueIndex"`
	Password string  `json:"-"`
	Bio      string  `json:"bio"`
	Avatar   *string `json:"avatar"`

	SuspendedAt *time.Time `json:"suspended_at"`

	Articles []Article `json:"articles" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"comments" gorm:"foreignKey:AuthorID"`
}
