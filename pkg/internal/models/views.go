package models

import "time"

// Views are the wire projections of the models above. They pin down the
// exact field set clients rely on, independent from the storage schema.

type UserView struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Bio      string  `json:"bio"`
	Image    *string `json:"image"`
	Token    string  `json:"token"`
}

type ProfileView struct {
	Username  string  `json:"username"`
	Bio       string  `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

type ArticleView struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int64       `json:"favoritesCount"`
	Author         ProfileView `json:"author"`
}

type CommentView struct {
	ID        uint        `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Body      string      `json:"body"`
	Author    ProfileView `json:"author"`
}

func (v Account) ToUserView(token string) UserView {
	return UserView{
		Email:    v.Email,
		Username: v.Name,
		Bio:      v.Bio,
		Image:    v.Avatar,
		Token:    token,
	}
}

// ToProfileView renders the public face of an account. There is no follow
// system, so the following flag stays false for every viewer.
func (v Account) ToProfileView() ProfileView {
	return ProfileView{
		Username: v.Name,
		Bio:      v.Bio,
		Image:    v.Avatar,
	}
}
