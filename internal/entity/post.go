package entity

import "github.com/craftloop/backend/pkg/enum"

type PostType string

var (
	PostTypeProject  = enum.New(PostType("project"))
	PostTypeTutorial = enum.New(PostType("tutorial"))
)

type Post struct {
	Base
	AuthorID string `gorm:"index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Type        PostType
	Title       string
	Description string

	Likes uint64
}

type PostLike struct {
	PostID string `gorm:"primaryKey"`
	Post   Post   `gorm:"foreignKey:PostID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}
