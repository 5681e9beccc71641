package httpx

import (
	"net/http"

	"github.com/jesb1n/immich/internal/consts"
	"github.com/jesb1n/immich/internal/dto"

	"github.com/gin-gonic/gin"
)

// SetAuthUser 由认证中间件调用
func SetAuthUser(c *gin.Context, user *dto.AuthUser) {
	c.Set(consts.ContextAuthUser, user)
}

// AuthUser 取出调用者身份，缺失时写 401 并返回 false
func AuthUser(c *gin.Context) (*dto.AuthUser, bool) {
	value, exists := c.Get(consts.ContextAuthUser)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
		return nil, false
	}
	user, ok := value.(*dto.AuthUser)
	if !ok || user == nil || user.ID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效的用户信息"})
		return nil, false
	}
	return user, true
}
