package service

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jesb1n/immich/internal/consts"
	"github.com/jesb1n/immich/internal/dto"
	"github.com/jesb1n/immich/internal/model"
	moduledto "github.com/jesb1n/immich/internal/modules/person/dto"
	"github.com/jesb1n/immich/internal/modules/person/repo"
	platformservice "github.com/jesb1n/immich/internal/platform/service"
	"github.com/jesb1n/immich/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc       *Service
	gdb       *gorm.DB
	thumbs    string
	owner     *model.User
	caller    *dto.AuthUser
	other     *model.User
	maxAssets int
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gdb := testutils.SetupDB(t)
	f := &fixture{gdb: gdb, thumbs: t.TempDir(), maxAssets: 1000}
	f.svc = New(repo.NewPersonRepository(gdb), func() Settings {
		return Settings{ThumbnailPath: f.thumbs, MaxAssets: f.maxAssets}
	})
	f.owner = testutils.CreateUser(t, gdb, "owner@example.com", false)
	f.other = testutils.CreateUser(t, gdb, "other@example.com", false)
	f.caller = &dto.AuthUser{ID: f.owner.ID, Email: f.owner.Email}
	return f
}

// personWithFace 创建人物并在一张新资源中为其添加一个人脸
func (f *fixture) personWithFace(t *testing.T, ownerID, name string) (*model.Person, *model.Asset) {
	t.Helper()
	p := testutils.CreatePerson(t, f.gdb, ownerID, name)
	a := testutils.CreateAsset(t, f.gdb, ownerID, consts.AssetTypeImage, 100)
	testutils.CreateFace(t, f.gdb, a.ID, &p.ID)
	return p, a
}

func (f *fixture) load(t *testing.T, id string) *model.Person {
	t.Helper()
	var p model.Person
	require.NoError(t, f.gdb.Where("id = ?", id).First(&p).Error)
	return &p
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// 测试内容：验证人物列表排序、隐藏人物过滤以及 total/visible 统计。
func TestGetAll_OrderAndHidden(t *testing.T) {
	f := setup(t)
	f.personWithFace(t, f.owner.ID, "Bob")
	f.personWithFace(t, f.owner.ID, "")
	f.personWithFace(t, f.owner.ID, "Alice")
	hidden, _ := f.personWithFace(t, f.owner.ID, "Zed")
	require.NoError(t, f.gdb.Model(hidden).Update("is_hidden", true).Error)
	testutils.CreatePerson(t, f.gdb, f.owner.ID, "NoFace")
	f.personWithFace(t, f.other.ID, "Stranger")

	resp, err := f.svc.GetAll(f.caller, false)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 3, resp.Visible)
	require.Len(t, resp.People, 3)
	assert.Equal(t, []string{"Alice", "Bob", ""}, []string{resp.People[0].Name, resp.People[1].Name, resp.People[2].Name})

	resp, err = f.svc.GetAll(f.caller, true)
	require.NoError(t, err)
	require.Len(t, resp.People, 4)
	assert.Equal(t, "Zed", resp.People[3].Name)
	assert.True(t, resp.People[3].IsHidden)
}

// 测试内容：验证单个人物查询的归属校验。
func TestGetByID_Access(t *testing.T) {
	f := setup(t)
	mine, _ := f.personWithFace(t, f.owner.ID, "Mine")
	theirs, _ := f.personWithFace(t, f.other.ID, "Theirs")

	resp, err := f.svc.GetByID(f.caller, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", resp.Name)

	_, err = f.svc.GetByID(f.caller, theirs.ID)
	assert.Equal(t, platformservice.ErrorCodeForbidden, platformservice.CodeOf(err))

	_, err = f.svc.GetByID(f.caller, "6f1c1f4e-8a55-4a8e-9f8c-3d6b7c1e2a10")
	assert.Equal(t, platformservice.ErrorCodeNotFound, platformservice.CodeOf(err))
}

// 测试内容：验证新建人物会写入字段，并把 data 中的人脸移动到新人物。
func TestCreatePerson(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.CreatePerson(f.caller, moduledto.PersonCreateRequest{Name: strPtr("Alice")})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Alice", resp.Name)
	assert.Nil(t, resp.BirthDate)

	source, asset := f.personWithFace(t, f.owner.ID, "Old")
	resp, err = f.svc.CreatePerson(f.caller, moduledto.PersonCreateRequest{
		Name:      strPtr("New"),
		BirthDate: strPtr("1990-05-17"),
		Data:      []moduledto.AssetFaceUpdateItem{{PersonID: source.ID, AssetID: asset.ID}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.BirthDate)
	assert.Equal(t, "1990-05-17", *resp.BirthDate)

	created := f.load(t, resp.ID)
	require.NotNil(t, created.FaceAssetID)
	assert.Equal(t, asset.ID, *created.FaceAssetID)

	var count int64
	require.NoError(t, f.gdb.Model(&model.AssetFace{}).Where("person_id = ?", resp.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// 测试内容：验证 data 中包含他人的人物时拒绝创建。
func TestCreatePerson_ForeignSourceRejected(t *testing.T) {
	f := setup(t)
	theirs, asset := f.personWithFace(t, f.other.ID, "Theirs")

	_, err := f.svc.CreatePerson(f.caller, moduledto.PersonCreateRequest{
		Data: []moduledto.AssetFaceUpdateItem{{PersonID: theirs.ID, AssetID: asset.ID}},
	})
	assert.Equal(t, platformservice.ErrorCodeForbidden, platformservice.CodeOf(err))

	var count int64
	require.NoError(t, f.gdb.Model(&model.Person{}).Where("owner_id = ?", f.owner.ID).Count(&count).Error)
	assert.Zero(t, count)
}

// failFaceUpdates 让后续对 asset_faces 的更新失败，用于验证事务回滚
func failFaceUpdates(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	err := gdb.Callback().Update().Before("gorm:update").Register("test:fail_face_updates", func(tx *gorm.DB) {
		if tx.Statement.Table == "asset_faces" {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)
}

// 测试内容：验证移动人脸失败时新建人物整体回滚，不留下空人物。
func TestCreatePerson_RollbackOnFaceMoveFailure(t *testing.T) {
	f := setup(t)
	source, asset := f.personWithFace(t, f.owner.ID, "Old")
	failFaceUpdates(t, f.gdb)

	_, err := f.svc.CreatePerson(f.caller, moduledto.PersonCreateRequest{
		Name: strPtr("Alice"),
		Data: []moduledto.AssetFaceUpdateItem{{PersonID: source.ID, AssetID: asset.ID}},
	})
	assert.Equal(t, platformservice.ErrorCodeInternal, platformservice.CodeOf(err))

	var count int64
	require.NoError(t, f.gdb.Model(&model.Person{}).Where("name = ?", "Alice").Count(&count).Error)
	assert.Zero(t, count)

	var face model.AssetFace
	require.NoError(t, f.gdb.Where("asset_id = ?", asset.ID).First(&face).Error)
	require.NotNil(t, face.PersonID)
	assert.Equal(t, source.ID, *face.PersonID)
}

// 测试内容：验证部分更新与封面资源校验。
func TestUpdate(t *testing.T) {
	f := setup(t)
	p, asset := f.personWithFace(t, f.owner.ID, "Before")
	unrelated := testutils.CreateAsset(t, f.gdb, f.owner.ID, consts.AssetTypeImage, 1)

	resp, err := f.svc.Update(f.caller, p.ID, moduledto.PersonUpdateRequest{
		Name:               strPtr("  After "),
		BirthDate:          strPtr("2001-02-03"),
		IsHidden:           boolPtr(true),
		FeatureFaceAssetID: strPtr(asset.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, "After", resp.Name)
	assert.True(t, resp.IsHidden)
	require.NotNil(t, resp.BirthDate)
	assert.Equal(t, "2001-02-03", *resp.BirthDate)
	assert.Equal(t, asset.ID, *f.load(t, p.ID).FaceAssetID)

	resp, err = f.svc.Update(f.caller, p.ID, moduledto.PersonUpdateRequest{BirthDate: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, resp.BirthDate)
	assert.Equal(t, "After", resp.Name)

	_, err = f.svc.Update(f.caller, p.ID, moduledto.PersonUpdateRequest{FeatureFaceAssetID: strPtr(unrelated.ID)})
	assert.Equal(t, platformservice.ErrorCodeValidation, platformservice.CodeOf(err))
}

// 测试内容：验证批量更新每项一个结果且顺序与输入一致。
func TestUpdatePeople_OrderAndReasons(t *testing.T) {
	f := setup(t)
	mine, _ := f.personWithFace(t, f.owner.ID, "Mine")
	theirs, _ := f.personWithFace(t, f.other.ID, "Theirs")
	missing := "0b0c4a52-1d7e-4c5e-8f6a-2b3c4d5e6f70"

	results := f.svc.UpdatePeople(f.caller, moduledto.PeopleUpdateRequest{People: []moduledto.PeopleUpdateItem{
		{ID: theirs.ID, Name: strPtr("x")},
		{ID: mine.ID, Name: strPtr("Renamed")},
		{ID: missing, Name: strPtr("y")},
	}})

	assert.Equal(t, []moduledto.BulkIDResponse{
		{ID: theirs.ID, Error: moduledto.BulkIDErrorNoPermission},
		{ID: mine.ID, Success: true},
		{ID: missing, Error: moduledto.BulkIDErrorNotFound},
	}, results)
	assert.Equal(t, "Renamed", f.load(t, mine.ID).Name)
	assert.Equal(t, "Theirs", f.load(t, theirs.ID).Name)
}

// 测试内容：验证统计的是含有该人物人脸的不同资源数量。
func TestGetStatistics_DistinctAssets(t *testing.T) {
	f := setup(t)
	p, asset := f.personWithFace(t, f.owner.ID, "P")
	testutils.CreateFace(t, f.gdb, asset.ID, &p.ID)
	second := testutils.CreateAsset(t, f.gdb, f.owner.ID, consts.AssetTypeVideo, 1)
	testutils.CreateFace(t, f.gdb, second.ID, &p.ID)

	resp, err := f.svc.GetStatistics(f.caller, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Assets)
}

// 测试内容：验证人物资源排除已归档、按时间倒序并受数量上限限制。
func TestGetAssets(t *testing.T) {
	f := setup(t)
	p := testutils.CreatePerson(t, f.gdb, f.owner.ID, "P")
	friend := testutils.CreatePerson(t, f.gdb, f.owner.ID, "Friend")
	base := time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		a := testutils.CreateAsset(t, f.gdb, f.owner.ID, consts.AssetTypeImage, 10)
		require.NoError(t, f.gdb.Model(a).Update("file_created_at", base.Add(time.Duration(i)*time.Hour)).Error)
		testutils.CreateFace(t, f.gdb, a.ID, &p.ID)
		ids = append(ids, a.ID)
	}
	testutils.CreateFace(t, f.gdb, ids[2], &friend.ID)
	archived := testutils.CreateAsset(t, f.gdb, f.owner.ID, consts.AssetTypeImage, 10)
	require.NoError(t, f.gdb.Model(archived).Update("is_archived", true).Error)
	testutils.CreateFace(t, f.gdb, archived.ID, &p.ID)

	assets, err := f.svc.GetAssets(f.caller, p.ID)
	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{assets[0].ID, assets[1].ID, assets[2].ID})
	assert.Len(t, assets[0].People, 2)
	assert.Len(t, assets[1].People, 1)

	f.maxAssets = 2
	assets, err = f.svc.GetAssets(f.caller, p.ID)
	require.NoError(t, err)
	assert.Len(t, assets, 2)
}

// 测试内容：验证人脸框查询，资源中没有该人物人脸时返回 not_found。
func TestGetFaceEntity(t *testing.T) {
	f := setup(t)
	p, asset := f.personWithFace(t, f.owner.ID, "P")
	other := testutils.CreateAsset(t, f.gdb, f.owner.ID, consts.AssetTypeImage, 1)

	box, err := f.svc.GetFaceEntity(f.caller, p.ID, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, moduledto.AssetFaceBoxResponse{
		ImageWidth: 1000, ImageHeight: 800,
		BoundingBoxX1: 10, BoundingBoxY1: 20, BoundingBoxX2: 110, BoundingBoxY2: 140,
	}, *box)

	_, err = f.svc.GetFaceEntity(f.caller, p.ID, other.ID)
	assert.Equal(t, platformservice.ErrorCodeNotFound, platformservice.CodeOf(err))
}

// 测试内容：验证移动人脸后目标人物采用该资源作为封面，原人物封面被清空。
func TestReassignFaces(t *testing.T) {
	f := setup(t)
	source, asset := f.personWithFace(t, f.owner.ID, "Source")
	require.NoError(t, f.gdb.Model(source).Update("face_asset_id", asset.ID).Error)
	target := testutils.CreatePerson(t, f.gdb, f.owner.ID, "Target")
	empty := testutils.CreateAsset(t, f.gdb, f.owner.ID, consts.AssetTypeImage, 1)

	result, err := f.svc.ReassignFaces(f.caller, target.ID, moduledto.AssetFaceUpdateRequest{Data: []moduledto.AssetFaceUpdateItem{
		{PersonID: source.ID, AssetID: asset.ID},
		{PersonID: source.ID, AssetID: empty.ID},
	}})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, target.ID, result[0].ID)

	reloaded := f.load(t, target.ID)
	require.NotNil(t, reloaded.FaceAssetID)
	assert.Equal(t, asset.ID, *reloaded.FaceAssetID)
	assert.Nil(t, f.load(t, source.ID).FaceAssetID)

	theirs, theirAsset := f.personWithFace(t, f.other.ID, "Theirs")
	_, err = f.svc.ReassignFaces(f.caller, target.ID, moduledto.AssetFaceUpdateRequest{Data: []moduledto.AssetFaceUpdateItem{
		{PersonID: theirs.ID, AssetID: theirAsset.ID},
	}})
	assert.Equal(t, platformservice.ErrorCodeForbidden, platformservice.CodeOf(err))
}

// 测试内容：验证靠后的条目引用他人人物时整个请求被拒绝，前面的人脸保持不动。
func TestReassignFaces_RejectsBeforeMovingAny(t *testing.T) {
	f := setup(t)
	source, asset := f.personWithFace(t, f.owner.ID, "Source")
	target := testutils.CreatePerson(t, f.gdb, f.owner.ID, "Target")
	theirs, theirAsset := f.personWithFace(t, f.other.ID, "Theirs")
	missing := "0b0c4a52-1d7e-4c5e-8f6a-2b3c4d5e6f70"

	_, err := f.svc.ReassignFaces(f.caller, target.ID, moduledto.AssetFaceUpdateRequest{Data: []moduledto.AssetFaceUpdateItem{
		{PersonID: source.ID, AssetID: asset.ID},
		{PersonID: theirs.ID, AssetID: theirAsset.ID},
	}})
	assert.Equal(t, platformservice.ErrorCodeForbidden, platformservice.CodeOf(err))

	_, err = f.svc.ReassignFaces(f.caller, target.ID, moduledto.AssetFaceUpdateRequest{Data: []moduledto.AssetFaceUpdateItem{
		{PersonID: source.ID, AssetID: asset.ID},
		{PersonID: missing, AssetID: asset.ID},
	}})
	assert.Equal(t, platformservice.ErrorCodeNotFound, platformservice.CodeOf(err))

	var face model.AssetFace
	require.NoError(t, f.gdb.Where("asset_id = ?", asset.ID).First(&face).Error)
	require.NotNil(t, face.PersonID)
	assert.Equal(t, source.ID, *face.PersonID)
	assert.Nil(t, f.load(t, target.ID).FaceAssetID)
}

// 测试内容：验证同一人脸在请求中重复出现时只移动并返回一次，且移动失败时不做任何修改。
func TestReassignFaces_DedupAndRollback(t *testing.T) {
	f := setup(t)
	source, asset := f.personWithFace(t, f.owner.ID, "Source")
	second := testutils.CreateAsset(t, f.gdb, f.owner.ID, consts.AssetTypeImage, 1)
	testutils.CreateFace(t, f.gdb, second.ID, &source.ID)
	target := testutils.CreatePerson(t, f.gdb, f.owner.ID, "Target")

	item := moduledto.AssetFaceUpdateItem{PersonID: source.ID, AssetID: asset.ID}
	result, err := f.svc.ReassignFaces(f.caller, target.ID, moduledto.AssetFaceUpdateRequest{Data: []moduledto.AssetFaceUpdateItem{item, item}})
	require.NoError(t, err)
	assert.Len(t, result, 1)

	failFaceUpdates(t, f.gdb)
	_, err = f.svc.ReassignFaces(f.caller, target.ID, moduledto.AssetFaceUpdateRequest{Data: []moduledto.AssetFaceUpdateItem{
		{PersonID: source.ID, AssetID: second.ID},
	}})
	assert.Equal(t, platformservice.ErrorCodeInternal, platformservice.CodeOf(err))

	var face model.AssetFace
	require.NoError(t, f.gdb.Where("asset_id = ?", second.ID).First(&face).Error)
	require.NotNil(t, face.PersonID)
	assert.Equal(t, source.ID, *face.PersonID)
}

// 测试内容：验证解除人脸关联的结果以资源 id 标识且顺序与输入一致。
func TestUnassignFaces(t *testing.T) {
	f := setup(t)
	mine, asset := f.personWithFace(t, f.owner.ID, "Mine")
	theirs, theirAsset := f.personWithFace(t, f.other.ID, "Theirs")
	noFace := testutils.CreateAsset(t, f.gdb, f.owner.ID, consts.AssetTypeImage, 1)
	missing := "0b0c4a52-1d7e-4c5e-8f6a-2b3c4d5e6f70"

	results := f.svc.UnassignFaces(f.caller, moduledto.AssetFaceUpdateRequest{Data: []moduledto.AssetFaceUpdateItem{
		{PersonID: mine.ID, AssetID: asset.ID},
		{PersonID: missing, AssetID: asset.ID},
		{PersonID: theirs.ID, AssetID: theirAsset.ID},
		{PersonID: mine.ID, AssetID: noFace.ID},
	}})

	assert.Equal(t, []moduledto.BulkIDResponse{
		{ID: asset.ID, Success: true},
		{ID: asset.ID, Error: moduledto.BulkIDErrorNotFound},
		{ID: theirAsset.ID, Error: moduledto.BulkIDErrorNoPermission},
		{ID: noFace.ID, Error: moduledto.BulkIDErrorNotFound},
	}, results)

	var face model.AssetFace
	require.NoError(t, f.gdb.Where("asset_id = ?", asset.ID).First(&face).Error)
	assert.Nil(t, face.PersonID)
}

// 测试内容：验证合并人物的逐项结果、名字与封面继承以及被合并人物删除。
func TestMergePerson(t *testing.T) {
	f := setup(t)
	target, _ := f.personWithFace(t, f.owner.ID, "")
	source, sourceAsset := f.personWithFace(t, f.owner.ID, "Bob")
	require.NoError(t, f.gdb.Model(source).Update("face_asset_id", sourceAsset.ID).Error)
	theirs, _ := f.personWithFace(t, f.other.ID, "Theirs")
	missing := "0b0c4a52-1d7e-4c5e-8f6a-2b3c4d5e6f70"

	results, err := f.svc.MergePerson(f.caller, target.ID, moduledto.MergePersonRequest{
		IDs: []string{target.ID, source.ID, missing, theirs.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []moduledto.BulkIDResponse{
		{ID: target.ID, Error: moduledto.BulkIDErrorDuplicate},
		{ID: source.ID, Success: true},
		{ID: missing, Error: moduledto.BulkIDErrorNotFound},
		{ID: theirs.ID, Error: moduledto.BulkIDErrorNoPermission},
	}, results)

	merged := f.load(t, target.ID)
	assert.Equal(t, "Bob", merged.Name)
	require.NotNil(t, merged.FaceAssetID)
	assert.Equal(t, sourceAsset.ID, *merged.FaceAssetID)

	err = f.gdb.Where("id = ?", source.ID).First(&model.Person{}).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, f.gdb.Model(&model.AssetFace{}).Where("person_id = ?", target.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	_, err = f.svc.MergePerson(f.caller, theirs.ID, moduledto.MergePersonRequest{IDs: []string{source.ID}})
	assert.Equal(t, platformservice.ErrorCodeForbidden, platformservice.CodeOf(err))
}

// 测试内容：验证缩略图流的内容与长度，以及缺失或越界路径返回 not_found。
func TestGetThumbnail(t *testing.T) {
	f := setup(t)
	p, _ := f.personWithFace(t, f.owner.ID, "P")
	content := []byte("fake-jpeg-bytes")
	require.NoError(t, os.MkdirAll(filepath.Join(f.thumbs, f.owner.ID), 0755))
	rel := filepath.ToSlash(filepath.Join(f.owner.ID, p.ID+".jpeg"))
	require.NoError(t, os.WriteFile(filepath.Join(f.thumbs, rel), content, 0644))

	_, err := f.svc.GetThumbnail(f.caller, p.ID)
	assert.Equal(t, platformservice.ErrorCodeNotFound, platformservice.CodeOf(err))

	require.NoError(t, f.gdb.Model(p).Update("thumbnail_path", rel).Error)
	stream, err := f.svc.GetThumbnail(f.caller, p.ID)
	require.NoError(t, err)
	defer stream.Stream.Close()
	assert.Equal(t, "image/jpeg", stream.Type)
	assert.EqualValues(t, len(content), stream.Length)
	got, err := io.ReadAll(stream.Stream)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	abs := filepath.Join(f.thumbs, rel)
	require.NoError(t, f.gdb.Model(p).Update("thumbnail_path", abs).Error)
	absStream, err := f.svc.GetThumbnail(f.caller, p.ID)
	require.NoError(t, err)
	_ = absStream.Stream.Close()

	for _, bad := range []string{"../escape.jpeg", "missing.jpeg"} {
		require.NoError(t, f.gdb.Model(p).Update("thumbnail_path", bad).Error)
		_, err = f.svc.GetThumbnail(f.caller, p.ID)
		assert.Equal(t, platformservice.ErrorCodeNotFound, platformservice.CodeOf(err), bad)
	}
}
