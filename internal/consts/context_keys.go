package consts

// gin.Context 中使用的键
const (
	// ContextAuthUser 认证中间件写入的调用者身份 (*AuthUser)
	ContextAuthUser = "auth_user"
)

// 用户状态
const (
	UserStatusActive   = 1
	UserStatusBanned   = 2
	UserStatusDisabled = 3
)

// 资源类型
const (
	AssetTypeImage = "IMAGE"
	AssetTypeVideo = "VIDEO"
)
