package model

import "github.com/google/uuid"

// newID 为空主键生成 UUID v4
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// AllModels 参与自动迁移的模型，顺序即建表顺序
func AllModels() []interface{} {
	return []interface{}{&User{}, &Asset{}, &Person{}, &AssetFace{}}
}
