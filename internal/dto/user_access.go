package dto

// UserAccess 账号状态与管理员标记，以数据库记录为准
type UserAccess struct {
	Status  int
	IsAdmin bool
}
