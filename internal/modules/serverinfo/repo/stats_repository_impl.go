package repo

import (
	"github.com/jesb1n/immich/internal/consts"
	"github.com/jesb1n/immich/internal/model"

	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

// UsageByUser 所有未删除用户的照片/视频数量与占用空间，没有资源的用户也会返回一行
func (r *StatsRepository) UsageByUser() ([]UserUsageRow, error) {
	var rows []UserUsageRow
	err := r.db.Model(&model.User{}).
		Select(
			"users.id AS user_id, users.first_name AS first_name, users.last_name AS last_name, "+
				"COALESCE(SUM(CASE WHEN assets.type = ? THEN 1 ELSE 0 END), 0) AS photos, "+
				"COALESCE(SUM(CASE WHEN assets.type = ? THEN 1 ELSE 0 END), 0) AS videos, "+
				"COALESCE(SUM(assets.file_size), 0) AS usage_bytes",
			consts.AssetTypeImage, consts.AssetTypeVideo,
		).
		Joins("LEFT JOIN assets ON assets.owner_id = users.id").
		Group("users.id, users.first_name, users.last_name, users.created_at").
		Order("users.created_at ASC, users.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
