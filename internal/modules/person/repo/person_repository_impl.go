package repo

import (
	"github.com/jesb1n/immich/internal/model"

	"gorm.io/gorm"
)

type PersonRepository struct {
	db *gorm.DB
}

const hasFaceCondition = "EXISTS (SELECT 1 FROM asset_faces WHERE asset_faces.person_id = people.id)"

func (r *PersonRepository) FindByID(id string) (*model.Person, error) {
	var person model.Person
	if err := r.db.Where("id = ?", id).First(&person).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// ListWithFaces 调用者拥有且至少有一个人脸的人物，隐藏的排在后面，未命名的排在已命名之后
func (r *PersonRepository) ListWithFaces(ownerID string) ([]model.Person, error) {
	var people []model.Person
	err := r.db.Where("people.owner_id = ?", ownerID).
		Where(hasFaceCondition).
		Order("people.is_hidden ASC").
		Order("people.name = '' ASC").
		Order("people.name ASC").
		Order("people.created_at ASC").
		Find(&people).Error
	if err != nil {
		return nil, err
	}
	return people, nil
}

func (r *PersonRepository) UpdateFields(id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&model.Person{}).Where("id = ?", id).Updates(fields).Error
}

// CreateWithFaces 在一个事务内创建人物并把 faces 移动到该人物，任一步失败整体回滚
func (r *PersonRepository) CreateWithFaces(person *model.Person, faces []model.AssetFace) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(person).Error; err != nil {
			return err
		}
		if err := moveFaces(tx, person.ID, faces, person.FaceAssetID == nil); err != nil {
			return err
		}
		if person.FaceAssetID == nil && len(faces) > 0 {
			assetID := faces[0].AssetID
			person.FaceAssetID = &assetID
		}
		return nil
	})
}

func (r *PersonRepository) HasFaceInAsset(personID, assetID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.AssetFace{}).
		Where("person_id = ? AND asset_id = ?", personID, assetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PersonRepository) FindFace(personID, assetID string) (*model.AssetFace, error) {
	var face model.AssetFace
	err := r.db.Where("person_id = ? AND asset_id = ?", personID, assetID).
		Order("id ASC").
		First(&face).Error
	if err != nil {
		return nil, err
	}
	return &face, nil
}

// CountAssets 含有该人物人脸的不同资源数量
func (r *PersonRepository) CountAssets(personID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.AssetFace{}).
		Where("person_id = ?", personID).
		Distinct("asset_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListAssets 未归档且含有该人物人脸的资源，按拍摄时间倒序
func (r *PersonRepository) ListAssets(personID string, limit int) ([]model.Asset, error) {
	var assets []model.Asset
	query := r.db.Model(&model.Asset{}).
		Where("assets.is_archived = ?", false).
		Where("assets.id IN (?)", r.db.Model(&model.AssetFace{}).Select("asset_id").Where("person_id = ?", personID)).
		Order("assets.file_created_at DESC").
		Order("assets.id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// PeopleByAssetIDs 每个资源中出现的人物，同一人物在同一资源只出现一次
func (r *PersonRepository) PeopleByAssetIDs(assetIDs []string) (map[string][]model.Person, error) {
	result := make(map[string][]model.Person, len(assetIDs))
	if len(assetIDs) == 0 {
		return result, nil
	}

	var faces []model.AssetFace
	err := r.db.Preload("Person").
		Where("asset_id IN ? AND person_id IS NOT NULL", assetIDs).
		Order("asset_id ASC, id ASC").
		Find(&faces).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(faces))
	for _, face := range faces {
		if face.Person == nil {
			continue
		}
		key := face.AssetID + "/" + face.Person.ID
		if seen[key] {
			continue
		}
		seen[key] = true
		result[face.AssetID] = append(result[face.AssetID], *face.Person)
	}
	return result, nil
}

// ReassignFaces 在一个事务内把 faces 移动到目标人物。
// 原人物的封面若指向不再含有其人脸的资源则清空；adoptFeatureFace 为 true 时目标人物以第一个人脸的资源作为封面。
func (r *PersonRepository) ReassignFaces(targetID string, faces []model.AssetFace, adoptFeatureFace bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return moveFaces(tx, targetID, faces, adoptFeatureFace)
	})
}

func moveFaces(tx *gorm.DB, targetID string, faces []model.AssetFace, adoptFeatureFace bool) error {
	for _, face := range faces {
		if err := tx.Model(&model.AssetFace{}).Where("id = ?", face.ID).
			Update("person_id", targetID).Error; err != nil {
			return err
		}
		if face.PersonID != nil && *face.PersonID != targetID {
			if err := clearFeatureFace(tx, *face.PersonID, face.AssetID); err != nil {
				return err
			}
		}
	}
	if adoptFeatureFace && len(faces) > 0 {
		return tx.Model(&model.Person{}).Where("id = ?", targetID).
			Update("face_asset_id", faces[0].AssetID).Error
	}
	return nil
}

// UnassignFace 解除人物在资源中的人脸关联，返回受影响的人脸数量
func (r *PersonRepository) UnassignFace(personID, assetID string) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.AssetFace{}).
			Where("person_id = ? AND asset_id = ?", personID, assetID).
			Update("person_id", nil)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return clearFeatureFace(tx, personID, assetID)
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// MergeInto 在一个事务内把 source 的全部人脸移到 target，更新 target 字段并删除 source
func (r *PersonRepository) MergeInto(targetID, sourceID string, targetFields map[string]any) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.AssetFace{}).Where("person_id = ?", sourceID).
			Update("person_id", targetID).Error; err != nil {
			return err
		}
		if len(targetFields) > 0 {
			if err := tx.Model(&model.Person{}).Where("id = ?", targetID).
				Updates(targetFields).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", sourceID).Delete(&model.Person{}).Error
	})
}

func clearFeatureFace(tx *gorm.DB, personID, assetID string) error {
	var remaining int64
	if err := tx.Model(&model.AssetFace{}).
		Where("person_id = ? AND asset_id = ?", personID, assetID).
		Count(&remaining).Error; err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}
	return tx.Model(&model.Person{}).
		Where("id = ? AND face_asset_id = ?", personID, assetID).
		Update("face_asset_id", nil).Error
}
