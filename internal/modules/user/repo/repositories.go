package repo

import (
	"github.com/jesb1n/immich/internal/model"

	"gorm.io/gorm"
)

type UserStore interface {
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindAccessByID(id string) (*model.User, error)
	Create(user *model.User) error
	UpdateFields(id string, fields map[string]any) error
	CountAll() (int64, error)
}

func NewUserRepository(db *gorm.DB) UserStore {
	return &UserRepository{db: db}
}
