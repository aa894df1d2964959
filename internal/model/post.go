package model

import (
	"time"

	"gorm.io/datatypes"
)

// Post is a blog entry owned by a user.
type Post struct {
	ID         uint                        `json:"id" gorm:"primaryKey"`
	Title      string                      `json:"title" gorm:"size:255;not null"`
	Slug       string                      `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Content    string                      `json:"content" gorm:"type:text;not null"`
	Thumbnail  *string                     `json:"thumbnail" gorm:"size:1024"`
	IsFeatured bool                        `json:"isFeatured" gorm:"not null;default:false;index"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	Views      int                         `json:"views" gorm:"not null;default:0"`
	AuthorID   uint                        `json:"authorId" gorm:"not null;index"`
	Author     *Author                     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	CreatedAt  time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time                   `json:"updatedAt"`
}
