package dto

import "time"

// UUIDParam 路径中的 :id
type UUIDParam struct {
	ID string `uri:"id" binding:"required,uuid4"`
}

// AssetFaceParam 路径中的 :id 与 :assetId
type AssetFaceParam struct {
	ID      string `uri:"id" binding:"required,uuid4"`
	AssetID string `uri:"assetId" binding:"required,uuid4"`
}

type PersonSearchRequest struct {
	WithHidden    bool `form:"withHidden"`
	IncludeHidden bool `form:"includeHidden"`
}

type AssetFaceUpdateItem struct {
	PersonID string `json:"personId" binding:"required,uuid4"`
	AssetID  string `json:"assetId" binding:"required,uuid4"`
}

type AssetFaceUpdateRequest struct {
	Data []AssetFaceUpdateItem `json:"data" binding:"required,min=1,max=500,dive"`
}

type PersonCreateRequest struct {
	Name      *string               `json:"name" binding:"omitempty,max=255"`
	BirthDate *string               `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	IsHidden  *bool                 `json:"isHidden"`
	Data      []AssetFaceUpdateItem `json:"data" binding:"omitempty,max=500,dive"`
}

type PersonUpdateRequest struct {
	Name               *string `json:"name" binding:"omitempty,max=255"`
	BirthDate          *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	FeatureFaceAssetID *string `json:"featureFaceAssetId" binding:"omitempty,uuid4"`
	IsHidden           *bool   `json:"isHidden"`
}

type PeopleUpdateItem struct {
	ID                 string  `json:"id" binding:"required,uuid4"`
	Name               *string `json:"name" binding:"omitempty,max=255"`
	BirthDate          *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	FeatureFaceAssetID *string `json:"featureFaceAssetId" binding:"omitempty,uuid4"`
	IsHidden           *bool   `json:"isHidden"`
}

type PeopleUpdateRequest struct {
	People []PeopleUpdateItem `json:"people" binding:"required,min=1,max=500,dive"`
}

type MergePersonRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,max=500,dive,uuid4"`
}

type PersonResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	BirthDate     *string `json:"birthDate"`
	ThumbnailPath string  `json:"thumbnailPath"`
	IsHidden      bool    `json:"isHidden"`
}

type PeopleResponse struct {
	Total   int              `json:"total"`
	Visible int              `json:"visible"`
	People  []PersonResponse `json:"people"`
}

type PersonStatisticsResponse struct {
	Assets int `json:"assets"`
}

type AssetFaceBoxResponse struct {
	ImageWidth    int `json:"imageWidth"`
	ImageHeight   int `json:"imageHeight"`
	BoundingBoxX1 int `json:"boundingBoxX1"`
	BoundingBoxY1 int `json:"boundingBoxY1"`
	BoundingBoxX2 int `json:"boundingBoxX2"`
	BoundingBoxY2 int `json:"boundingBoxY2"`
}

type AssetResponse struct {
	ID               string           `json:"id"`
	OwnerID          string           `json:"ownerId"`
	Type             string           `json:"type"`
	OriginalPath     string           `json:"originalPath"`
	OriginalFileName string           `json:"originalFileName"`
	FileSize         int64            `json:"fileSize"`
	FileCreatedAt    time.Time        `json:"fileCreatedAt"`
	IsFavorite       bool             `json:"isFavorite"`
	IsArchived       bool             `json:"isArchived"`
	People           []PersonResponse `json:"people"`
}

// BulkIDErrorReason 批量操作中单项失败原因
type BulkIDErrorReason string

const (
	BulkIDErrorDuplicate    BulkIDErrorReason = "duplicate"
	BulkIDErrorNoPermission BulkIDErrorReason = "no_permission"
	BulkIDErrorNotFound     BulkIDErrorReason = "not_found"
	BulkIDErrorUnknown      BulkIDErrorReason = "unknown"
)

type BulkIDResponse struct {
	ID      string            `json:"id"`
	Success bool              `json:"success"`
	Error   BulkIDErrorReason `json:"error,omitempty"`
}

// Update 取出单项中的更新字段
func (i PeopleUpdateItem) Update() PersonUpdateRequest {
	return PersonUpdateRequest{
		Name:               i.Name,
		BirthDate:          i.BirthDate,
		FeatureFaceAssetID: i.FeatureFaceAssetID,
		IsHidden:           i.IsHidden,
	}
}
