package testutils

import (
	"testing"
	"time"

	"github.com/jesb1n/immich/internal/model"

	"gorm.io/gorm"
)

// PasswordHash 占位用的 bcrypt 哈希，夹具用户不用于密码校验
const PasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func CreateUser(t *testing.T, gdb *gorm.DB, email string, admin bool) *model.User {
	t.Helper()
	u := &model.User{Email: email, FirstName: "Test", LastName: email, Password: PasswordHash, IsAdmin: admin, Status: 1}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return u
}

func CreateAsset(t *testing.T, gdb *gorm.DB, ownerID, assetType string, size int64) *model.Asset {
	t.Helper()
	a := &model.Asset{
		OwnerID:          ownerID,
		Type:             assetType,
		OriginalPath:     "library/" + ownerID + "/file",
		OriginalFileName: "file",
		FileSize:         size,
		FileCreatedAt:    time.Now(),
	}
	if err := gdb.Create(a).Error; err != nil {
		t.Fatalf("创建资源失败: %v", err)
	}
	return a
}

func CreatePerson(t *testing.T, gdb *gorm.DB, ownerID, name string) *model.Person {
	t.Helper()
	p := &model.Person{OwnerID: ownerID, Name: name}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("创建人物失败: %v", err)
	}
	return p
}

func CreateFace(t *testing.T, gdb *gorm.DB, assetID string, personID *string) *model.AssetFace {
	t.Helper()
	f := &model.AssetFace{
		AssetID:       assetID,
		PersonID:      personID,
		ImageWidth:    1000,
		ImageHeight:   800,
		BoundingBoxX1: 10,
		BoundingBoxY1: 20,
		BoundingBoxX2: 110,
		BoundingBoxY2: 140,
	}
	if err := gdb.Create(f).Error; err != nil {
		t.Fatalf("创建人脸失败: %v", err)
	}
	return f
}
