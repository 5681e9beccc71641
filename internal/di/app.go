package di

import (
	"github.com/jesb1n/immich/internal/modules"
	"github.com/jesb1n/immich/internal/platform/cache"
	"github.com/jesb1n/immich/internal/router"

	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"
)

type Application struct {
	Router  *router.Router
	Modules *modules.AppModules
	DB      *gorm.DB
}

func NewApplication(r *router.Router, m *modules.AppModules, gormDB *gorm.DB) *Application {
	return &Application{
		Router:  r,
		Modules: m,
		DB:      gormDB,
	}
}

// Close 关闭数据库与 Redis 连接，所有错误合并返回
func (a *Application) Close() error {
	var result error
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err != nil {
			result = multierror.Append(result, err)
		} else if err := sqlDB.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := cache.CloseRedisClient(); err != nil {
		result = multierror.Append(result, err)
	}
	return result
}
