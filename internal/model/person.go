package model

import (
	"time"

	"gorm.io/gorm"
)

type Person struct {
	ID            string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt     time.Time  `gorm:"index"`
	UpdatedAt     time.Time
	OwnerID       string     `json:"ownerId" gorm:"type:varchar(36);not null;index"`
	Owner         User       `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE;"`
	Name          string     `json:"name" gorm:"not null;default:''"`
	BirthDate     *time.Time `json:"birthDate"`
	ThumbnailPath string     `json:"thumbnailPath" gorm:"not null;default:''"`
	FaceAssetID   *string    `json:"faceAssetId" gorm:"type:varchar(36)"`
	IsHidden      bool       `json:"isHidden" gorm:"not null;default:false"`
}

func (p *Person) BeforeCreate(_ *gorm.DB) error {
	newID(&p.ID)
	return nil
}

// AssetFace 一张资源中检测到的一个人脸
type AssetFace struct {
	ID            string  `json:"id" gorm:"type:varchar(36);primaryKey"`
	AssetID       string  `json:"assetId" gorm:"type:varchar(36);not null;index"`
	Asset         Asset   `json:"-" gorm:"foreignKey:AssetID;references:ID;constraint:OnDelete:CASCADE;"`
	PersonID      *string `json:"personId" gorm:"type:varchar(36);index"`
	Person        *Person `json:"-" gorm:"foreignKey:PersonID;references:ID;constraint:OnDelete:SET NULL;"`
	ImageWidth    int     `json:"imageWidth" gorm:"not null;default:0"`
	ImageHeight   int     `json:"imageHeight" gorm:"not null;default:0"`
	BoundingBoxX1 int     `json:"boundingBoxX1" gorm:"not null;default:0"`
	BoundingBoxY1 int     `json:"boundingBoxY1" gorm:"not null;default:0"`
	BoundingBoxX2 int     `json:"boundingBoxX2" gorm:"not null;default:0"`
	BoundingBoxY2 int     `json:"boundingBoxY2" gorm:"not null;default:0"`
}

func (f *AssetFace) BeforeCreate(_ *gorm.DB) error {
	newID(&f.ID)
	return nil
}
