package service

import (
	"errors"
	"strings"

	"github.com/jesb1n/immich/internal/dto"
	"github.com/jesb1n/immich/internal/model"
	moduledto "github.com/jesb1n/immich/internal/modules/person/dto"
	platformservice "github.com/jesb1n/immich/internal/platform/service"

	"gorm.io/gorm"
)

// findOwned 查询人物并校验归属：不存在返回 not_found，属于其他用户返回 forbidden
func (s *Service) findOwned(ownerID, id string) (*model.Person, error) {
	person, err := s.personStore.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundErrorf("人物不存在: %s", id)
		}
		return nil, platformservice.WrapInternalError("查询人物失败", err)
	}
	if person.OwnerID != ownerID {
		return nil, platformservice.NewForbiddenError("无权访问该人物")
	}
	return person, nil
}

func (s *Service) reload(id string) (*moduledto.PersonResponse, error) {
	person, err := s.personStore.FindByID(id)
	if err != nil {
		return nil, platformservice.WrapInternalError("查询人物失败", err)
	}
	resp := toPersonResponse(person)
	return &resp, nil
}

// GetAll 列出调用者拥有且至少有一个人脸的人物
func (s *Service) GetAll(caller *dto.AuthUser, withHidden bool) (*moduledto.PeopleResponse, error) {
	people, err := s.personStore.ListWithFaces(caller.ID)
	if err != nil {
		return nil, platformservice.WrapInternalError("获取人物列表失败", err)
	}

	resp := &moduledto.PeopleResponse{
		Total:  len(people),
		People: make([]moduledto.PersonResponse, 0, len(people)),
	}
	for i := range people {
		if !people[i].IsHidden {
			resp.Visible++
		} else if !withHidden {
			continue
		}
		resp.People = append(resp.People, toPersonResponse(&people[i]))
	}
	return resp, nil
}

func (s *Service) GetByID(caller *dto.AuthUser, id string) (*moduledto.PersonResponse, error) {
	person, err := s.findOwned(caller.ID, id)
	if err != nil {
		return nil, err
	}
	resp := toPersonResponse(person)
	return &resp, nil
}

// CreatePerson 新建人物，data 中列出的人脸会被移动到新人物
func (s *Service) CreatePerson(caller *dto.AuthUser, req moduledto.PersonCreateRequest) (*moduledto.PersonResponse, error) {
	person := &model.Person{OwnerID: caller.ID}
	if req.Name != nil {
		person.Name = strings.TrimSpace(*req.Name)
	}
	if req.BirthDate != nil {
		birthDate, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, platformservice.NewValidationError("生日格式错误")
		}
		person.BirthDate = birthDate
	}
	if req.IsHidden != nil {
		person.IsHidden = *req.IsHidden
	}

	faces, err := s.collectFaces(caller.ID, req.Data)
	if err != nil {
		return nil, err
	}
	if err := s.personStore.CreateWithFaces(person, faces); err != nil {
		return nil, platformservice.WrapInternalError("创建人物失败", err)
	}
	return s.reload(person.ID)
}

// Update 部分更新人物信息
func (s *Service) Update(caller *dto.AuthUser, id string, req moduledto.PersonUpdateRequest) (*moduledto.PersonResponse, error) {
	person, err := s.findOwned(caller.ID, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.BirthDate != nil {
		birthDate, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, platformservice.NewValidationError("生日格式错误")
		}
		fields["birth_date"] = birthDate
	}
	if req.IsHidden != nil {
		fields["is_hidden"] = *req.IsHidden
	}
	if req.FeatureFaceAssetID != nil {
		assetID := *req.FeatureFaceAssetID
		ok, err := s.personStore.HasFaceInAsset(person.ID, assetID)
		if err != nil {
			return nil, platformservice.WrapInternalError("查询人脸失败", err)
		}
		if !ok {
			return nil, platformservice.NewValidationError("该资源中没有此人物的人脸")
		}
		fields["face_asset_id"] = assetID
	}

	if err := s.personStore.UpdateFields(person.ID, fields); err != nil {
		return nil, platformservice.WrapInternalError("更新人物失败", err)
	}
	return s.reload(person.ID)
}

// UpdatePeople 批量更新，每一项对应一个结果，顺序与输入一致
func (s *Service) UpdatePeople(caller *dto.AuthUser, req moduledto.PeopleUpdateRequest) []moduledto.BulkIDResponse {
	results := make([]moduledto.BulkIDResponse, 0, len(req.People))
	for _, item := range req.People {
		if _, err := s.Update(caller, item.ID, item.Update()); err != nil {
			results = append(results, bulkFailure(item.ID, err))
			continue
		}
		results = append(results, moduledto.BulkIDResponse{ID: item.ID, Success: true})
	}
	return results
}

func (s *Service) GetStatistics(caller *dto.AuthUser, id string) (*moduledto.PersonStatisticsResponse, error) {
	person, err := s.findOwned(caller.ID, id)
	if err != nil {
		return nil, err
	}
	count, err := s.personStore.CountAssets(person.ID)
	if err != nil {
		return nil, platformservice.WrapInternalError("统计人物资源失败", err)
	}
	return &moduledto.PersonStatisticsResponse{Assets: int(count)}, nil
}

// GetAssets 人物出现过的未归档资源，最新的在前
func (s *Service) GetAssets(caller *dto.AuthUser, id string) ([]moduledto.AssetResponse, error) {
	person, err := s.findOwned(caller.ID, id)
	if err != nil {
		return nil, err
	}

	limit := s.settings().MaxAssets
	if limit <= 0 {
		limit = defaultMaxAssets
	}
	assets, err := s.personStore.ListAssets(person.ID, limit)
	if err != nil {
		return nil, platformservice.WrapInternalError("获取人物资源失败", err)
	}

	assetIDs := make([]string, 0, len(assets))
	for _, a := range assets {
		assetIDs = append(assetIDs, a.ID)
	}
	peopleByAsset, err := s.personStore.PeopleByAssetIDs(assetIDs)
	if err != nil {
		return nil, platformservice.WrapInternalError("获取资源人物失败", err)
	}

	resp := make([]moduledto.AssetResponse, 0, len(assets))
	for i := range assets {
		resp = append(resp, toAssetResponse(&assets[i], peopleByAsset[assets[i].ID]))
	}
	return resp, nil
}

// GetFaceEntity 人物在指定资源中的人脸框
func (s *Service) GetFaceEntity(caller *dto.AuthUser, personID, assetID string) (*moduledto.AssetFaceBoxResponse, error) {
	person, err := s.findOwned(caller.ID, personID)
	if err != nil {
		return nil, err
	}
	face, err := s.personStore.FindFace(person.ID, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("未找到人脸")
		}
		return nil, platformservice.WrapInternalError("查询人脸失败", err)
	}
	return &moduledto.AssetFaceBoxResponse{
		ImageWidth:    face.ImageWidth,
		ImageHeight:   face.ImageHeight,
		BoundingBoxX1: face.BoundingBoxX1,
		BoundingBoxY1: face.BoundingBoxY1,
		BoundingBoxX2: face.BoundingBoxX2,
		BoundingBoxY2: face.BoundingBoxY2,
	}, nil
}

const defaultMaxAssets = 1000
