package dto

// AuthUser 已认证的调用者身份，由认证中间件写入请求上下文
type AuthUser struct {
	ID      string
	Email   string
	IsAdmin bool
}
