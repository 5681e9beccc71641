package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jesb1n/immich/internal/config"
	"github.com/jesb1n/immich/internal/consts"
	"github.com/jesb1n/immich/internal/db"
	"github.com/jesb1n/immich/internal/di"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg := config.Get()
	for _, dir := range []string{cfg.Storage.LibraryPath, cfg.Storage.ThumbnailPath} {
		if err := ensureStorageDir(dir); err != nil {
			return err
		}
	}

	db.InitDB()
	app, err := di.InitializeApplication(db.DB)
	if err != nil {
		return fmt.Errorf("装配应用失败: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("⚠️ 释放资源失败: %v", err)
		}
	}()

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	app.Router.Init(r)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API not found"})
	})

	userCount, err := app.Modules.User.Service.CountAll()
	if err != nil {
		return fmt.Errorf("统计用户失败: %w", err)
	}
	printWelcomeMessage(cfg, userCount)
	if userCount == 0 {
		log.Println("⚠️ 尚未创建任何用户，请先执行 user create --admin 创建管理员")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 服务启动成功，运行在 :%s\n", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// 等待中断信号，最多等待 5 秒处理完进行中的请求
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("服务启动失败: %w", err)
	case <-quit:
	}
	log.Println("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务强制关闭: %w", err)
	}
	log.Println("✅ 服务已退出")
	return nil
}

// ensureStorageDir 创建存储目录，拒绝直接使用当前工作目录
func ensureStorageDir(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}
	if cwd, err := os.Getwd(); err == nil && absPath == cwd {
		return fmt.Errorf("安全配置错误: 存储目录 '%s' 不能设置为工作目录", path)
	}
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return fmt.Errorf("无法创建存储目录 '%s': %w", path, err)
	}
	return nil
}

func printWelcomeMessage(cfg config.Config, userCount int64) {
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  版本     : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🗄️   数据库   : %s\n", cfg.Database.Type)
	fmt.Printf(" │   🔥  服务端口 : %s\n", cfg.Server.Port)
	fmt.Printf(" │   👥  用户数   : %d\n", userCount)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}
