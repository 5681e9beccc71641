package router

import (
	"log"

	"github.com/jesb1n/immich/internal/middleware"
	"github.com/jesb1n/immich/internal/modules"

	"github.com/gin-gonic/gin"
)

type Router struct {
	modules *modules.AppModules
}

func NewRouter(appModules *modules.AppModules) *Router {
	return &Router{modules: appModules}
}

func (rt *Router) Init(r *gin.Engine) {
	r.Use(middleware.SecurityHeaders())

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware())
	api.Use(middleware.BodyLimitMiddleware())

	groups := map[Access]*gin.RouterGroup{
		AccessPublic: api.Group(""),
		AccessUser:   api.Group("", middleware.JWTAuth(), middleware.UserStatusCheck(rt.modules.User.Service)),
		AccessAdmin: api.Group("",
			middleware.JWTAuth(),
			middleware.UserStatusCheck(rt.modules.User.Service),
			middleware.AdminCheck(),
		),
	}

	for _, route := range APIRoutes() {
		group, ok := groups[route.Access]
		if !ok {
			log.Fatalf("❌ 未知的路由访问级别 %q: %s %s", route.Access, route.Method, route.Path)
		}
		handlers := append(append([]gin.HandlerFunc{}, route.Middleware...), route.Handler(rt.modules))
		group.Handle(route.Method, route.Path, handlers...)
	}
}
