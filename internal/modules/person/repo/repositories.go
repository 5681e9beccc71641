package repo

import (
	"github.com/jesb1n/immich/internal/model"

	"gorm.io/gorm"
)

type PersonStore interface {
	FindByID(id string) (*model.Person, error)
	ListWithFaces(ownerID string) ([]model.Person, error)
	UpdateFields(id string, fields map[string]any) error
	CreateWithFaces(person *model.Person, faces []model.AssetFace) error

	HasFaceInAsset(personID, assetID string) (bool, error)
	FindFace(personID, assetID string) (*model.AssetFace, error)
	CountAssets(personID string) (int64, error)
	ListAssets(personID string, limit int) ([]model.Asset, error)
	PeopleByAssetIDs(assetIDs []string) (map[string][]model.Person, error)

	ReassignFaces(targetID string, faces []model.AssetFace, adoptFeatureFace bool) error
	UnassignFace(personID, assetID string) (int64, error)
	MergeInto(targetID, sourceID string, targetFields map[string]any) error
}

func NewPersonRepository(db *gorm.DB) PersonStore {
	return &PersonRepository{db: db}
}
