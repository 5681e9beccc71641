package user

import (
	"github.com/jesb1n/immich/internal/modules/user/repo"
	"github.com/jesb1n/immich/internal/modules/user/service"
)

// Module 用户模块不直接暴露 HTTP 接口，供认证中间件、统计与 CLI 使用
type Module struct {
	Service *service.Service
}

func New(userStore repo.UserStore) *Module {
	return &Module{Service: service.New(userStore)}
}
