package testutils

import (
	"os"
	"testing"

	"github.com/jesb1n/immich/internal/config"
)

type savedEnv struct {
	key   string
	had   bool
	value string
}

func setEnv(key, value string) savedEnv {
	prev, had := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	return savedEnv{key: key, had: had, value: prev}
}

func restoreEnv(envs []savedEnv) {
	for _, env := range envs {
		if env.had {
			_ = os.Setenv(env.key, env.value)
		} else {
			_ = os.Unsetenv(env.key)
		}
	}
}

// RunWithConfig 在 debug 模式与指定 JWT secret 下加载空配置目录并运行包内测试，
// 结束后恢复环境变量并返回退出码，供 TestMain 使用
func RunWithConfig(m *testing.M, name, jwtSecret string) int {
	saved := []savedEnv{
		setEnv("IMMICH_SERVER_MODE", "debug"),
		setEnv("IMMICH_JWT_SECRET", jwtSecret),
	}
	defer restoreEnv(saved)

	dir, err := os.MkdirTemp("", "immich-"+name+"-config-*")
	if err != nil {
		panic(err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	config.InitConfig(dir)
	return m.Run()
}
