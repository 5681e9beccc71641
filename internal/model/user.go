package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        string `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	Email     string         `json:"email" gorm:"unique;not null;size:255"`
	FirstName string         `json:"firstName" gorm:"not null;default:''"`
	LastName  string         `json:"lastName" gorm:"not null;default:''"`
	Password  string         `json:"-" gorm:"not null"`
	IsAdmin   bool           `json:"isAdmin" gorm:"not null;default:false"`
	Status    int            `json:"status" gorm:"default:1"` // 1: 正常, 2: 封禁, 3: 停用
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	newID(&u.ID)
	return nil
}
