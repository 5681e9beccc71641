package repo

import "gorm.io/gorm"

// UserUsageRow 每个用户的资源用量聚合结果
type UserUsageRow struct {
	UserID    string `gorm:"column:user_id"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
	Photos    int    `gorm:"column:photos"`
	Videos    int    `gorm:"column:videos"`
	Usage     int64  `gorm:"column:usage_bytes"`
}

type StatsStore interface {
	UsageByUser() ([]UserUsageRow, error)
}

func NewStatsRepository(db *gorm.DB) StatsStore {
	return &StatsRepository{db: db}
}
