package middleware

import (
	"os"
	"testing"

	"github.com/jesb1n/immich/internal/config"
	"github.com/jesb1n/immich/internal/testutils"
)

func TestMain(m *testing.M) {
	os.Exit(testutils.RunWithConfig(m, "middleware", "middleware_test_secret"))
}

// reloadConfig 以环境变量覆盖重新加载配置，测试结束后恢复默认
func reloadConfig(t *testing.T, env map[string]string) {
	t.Helper()
	prevDir := config.GetConfigDir()
	// 先注册，保证在环境变量恢复之后执行
	t.Cleanup(func() { config.InitConfig(prevDir) })
	for k, v := range env {
		t.Setenv(k, v)
	}
	config.InitConfig(t.TempDir())
}
