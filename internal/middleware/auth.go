package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jesb1n/immich/internal/consts"
	"github.com/jesb1n/immich/internal/dto"
	"github.com/jesb1n/immich/internal/modules/common/httpx"
	"github.com/jesb1n/immich/internal/platform/cache"
	platformservice "github.com/jesb1n/immich/internal/platform/service"
	"github.com/jesb1n/immich/internal/utils"

	"github.com/gin-gonic/gin"
)

const accessCacheTTL = 1 * time.Minute

// accessCache 缓存账号状态与管理员标记，减少数据库查询
var accessCache = cache.NewTTLCache("auth:user_access", accessCacheTTL)

// UserAccessSource 查询账号状态与管理员标记
type UserAccessSource interface {
	GetUserAccess(id string) (*dto.UserAccess, error)
}

// ClearUserAccessCache 清除指定用户的缓存，修改状态或管理员标记后调用
func ClearUserAccessCache(userID string) {
	accessCache.Delete(userID)
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "需要认证才能访问"})
			return
		}

		// 格式必须为 "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token 格式错误"})
			return
		}

		claims, err := utils.ParseAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token 无效或已过期"})
			return
		}

		httpx.SetAuthUser(c, &dto.AuthUser{ID: claims.UserID, Email: claims.Email, IsAdmin: claims.IsAdmin})
		c.Next()
	}
}

// UserStatusCheck 检查账号是否被封禁或停用，并以数据库中的管理员标记覆盖令牌声明。
// 需在 JWTAuth 之后使用。
func UserStatusCheck(users UserAccessSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := httpx.AuthUser(c)
		if !ok {
			return
		}

		access, found := cachedAccess(caller.ID)
		if !found {
			var err error
			access, err = users.GetUserAccess(caller.ID)
			if err != nil {
				if platformservice.CodeOf(err) == platformservice.ErrorCodeUnauthorized {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "用户不存在"})
					return
				}
				httpx.WriteServiceError(c, err, "查询用户状态失败")
				c.Abort()
				return
			}
			accessCache.Set(caller.ID, encodeAccess(access))
		}

		switch access.Status {
		case consts.UserStatusBanned:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "账号已被封禁"})
			return
		case consts.UserStatusDisabled:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "账号已停用"})
			return
		}

		if caller.IsAdmin != access.IsAdmin {
			current := *caller
			current.IsAdmin = access.IsAdmin
			httpx.SetAuthUser(c, &current)
		}
		c.Next()
	}
}

// 缓存值格式为 "<status>:<isAdmin>"
func encodeAccess(access *dto.UserAccess) string {
	return strconv.Itoa(access.Status) + ":" + strconv.FormatBool(access.IsAdmin)
}

func cachedAccess(userID string) (*dto.UserAccess, bool) {
	raw, ok := accessCache.Get(userID)
	if !ok {
		return nil, false
	}
	statusRaw, adminRaw, _ := strings.Cut(raw, ":")
	status, err := strconv.Atoi(statusRaw)
	if err != nil {
		accessCache.Delete(userID)
		return nil, false
	}
	isAdmin, err := strconv.ParseBool(adminRaw)
	if err != nil {
		accessCache.Delete(userID)
		return nil, false
	}
	return &dto.UserAccess{Status: status, IsAdmin: isAdmin}, true
}

// AdminCheck 需在 UserStatusCheck 之后使用
func AdminCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := httpx.AuthUser(c)
		if !ok {
			return
		}
		if !caller.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "需要管理员权限才能访问"})
			return
		}
		c.Next()
	}
}
