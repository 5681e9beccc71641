package utils

import "github.com/google/uuid"

// IsUUIDv4 判断字符串是否为标准格式的 UUID v4
func IsUUIDv4(s string) bool {
	if len(s) != 36 {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.Version() == 4 && id.Variant() == uuid.RFC4122
}
