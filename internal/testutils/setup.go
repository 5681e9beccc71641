package testutils

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jesb1n/immich/internal/db"
	"github.com/jesb1n/immich/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var memoryDBSeq int64

// memoryDSN 每个测试独占一个共享缓存的内存库，开启外键以覆盖人脸与人物的关联约束
func memoryDSN(t *testing.T) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return fmt.Sprintf("file:immich_%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		name, atomic.AddInt64(&memoryDBSeq, 1))
}

// SetupDB 创建已迁移用户、资产、人脸与人物表的内存 SQLite，并临时替换 db.DB
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(memoryDSN(t)), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	// 单连接保证事务与后续查询落在同一个内存库上
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := gdb.AutoMigrate(model.AllModels()...); err != nil {
		_ = sqlDB.Close()
		t.Fatalf("迁移测试表失败: %v", err)
	}

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() {
		if db.DB == gdb {
			db.DB = prev
		}
		_ = sqlDB.Close()
	})
	return gdb
}
