package model

import (
	"time"

	"gorm.io/datatypes"
)

// Project is a portfolio entry. Only admins write projects.
type Project struct {
	ID                uint                        `json:"id" gorm:"primaryKey"`
	Title             string                      `json:"title" gorm:"size:255;not null"`
	Content           string                      `json:"content" gorm:"type:text;not null"`
	Thumbnail         *string                     `json:"thumbnail" gorm:"size:1024"`
	ThumbnailPublicID *string                     `json:"thumbnailPublicId" gorm:"size:512"`
	IsFeatured        bool                        `json:"isFeatured" gorm:"not null;default:false;index"`
	Tags              datatypes.JSONSlice[string] `json:"tags"`
	LiveURL           *string                     `json:"liveUrl" gorm:"size:1024"`
	RepoURL           *string                     `json:"repoUrl" gorm:"size:1024"`
	CreatedAt         time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}
