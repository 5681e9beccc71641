package model

import (
	"time"

	"gorm.io/gorm"
)

type Asset struct {
	ID               string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	OwnerID          string    `json:"ownerId" gorm:"type:varchar(36);not null;index"`
	Owner            User      `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE;"`
	Type             string    `json:"type" gorm:"not null;size:16;index"` // IMAGE / VIDEO
	OriginalPath     string    `json:"originalPath" gorm:"not null"`
	OriginalFileName string    `json:"originalFileName" gorm:"not null"`
	FileSize         int64     `json:"fileSize" gorm:"not null;default:0"`
	FileCreatedAt    time.Time `json:"fileCreatedAt" gorm:"index"`
	IsFavorite       bool      `json:"isFavorite" gorm:"not null;default:false"`
	IsArchived       bool      `json:"isArchived" gorm:"not null;default:false"`
	CreatedAt        time.Time
}

func (a *Asset) BeforeCreate(_ *gorm.DB) error {
	newID(&a.ID)
	return nil
}
