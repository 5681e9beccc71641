package consts

const (
	// ApplicationName 应用名称
	ApplicationName = "Immich Server"

	// ApplicationVersion 后端版本
	ApplicationVersion = "1.66.1"
)

// ServerVersion 语义化版本，与 ApplicationVersion 保持一致
var ServerVersion = struct {
	Major int
	Minor int
	Patch int
}{Major: 1, Minor: 66, Patch: 1}
