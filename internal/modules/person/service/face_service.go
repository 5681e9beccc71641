package service

import (
	"errors"
	"log"

	"github.com/jesb1n/immich/internal/dto"
	"github.com/jesb1n/immich/internal/model"
	moduledto "github.com/jesb1n/immich/internal/modules/person/dto"
	platformservice "github.com/jesb1n/immich/internal/platform/service"

	"gorm.io/gorm"
)

// bulkFailure 将业务错误转换为批量结果中的失败原因
func bulkFailure(id string, err error) moduledto.BulkIDResponse {
	reason := moduledto.BulkIDErrorUnknown
	switch platformservice.CodeOf(err) {
	case platformservice.ErrorCodeNotFound:
		reason = moduledto.BulkIDErrorNotFound
	case platformservice.ErrorCodeForbidden:
		reason = moduledto.BulkIDErrorNoPermission
	}
	return moduledto.BulkIDResponse{ID: id, Success: false, Error: reason}
}

// collectFaces 校验全部来源人物的归属并收集待移动的人脸，不做任何写入。
// 来源人物在该资源中没有人脸的条目被跳过，同一人脸只收集一次。
func (s *Service) collectFaces(ownerID string, items []moduledto.AssetFaceUpdateItem) ([]model.AssetFace, error) {
	for _, item := range items {
		if _, err := s.findOwned(ownerID, item.PersonID); err != nil {
			return nil, err
		}
	}

	faces := make([]model.AssetFace, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		face, err := s.personStore.FindFace(item.PersonID, item.AssetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, platformservice.WrapInternalError("查询人脸失败", err)
		}
		if seen[face.ID] {
			continue
		}
		seen[face.ID] = true
		faces = append(faces, *face)
	}
	return faces, nil
}

// ReassignFaces 把列出的人脸移动到 personID，每移动一个人脸返回一次目标人物。
// 任一来源人物无权访问或不存在时不做任何修改。
func (s *Service) ReassignFaces(caller *dto.AuthUser, personID string, req moduledto.AssetFaceUpdateRequest) ([]moduledto.PersonResponse, error) {
	target, err := s.findOwned(caller.ID, personID)
	if err != nil {
		return nil, err
	}
	faces, err := s.collectFaces(caller.ID, req.Data)
	if err != nil {
		return nil, err
	}

	result := make([]moduledto.PersonResponse, 0, len(faces))
	if len(faces) == 0 {
		return result, nil
	}
	if err := s.personStore.ReassignFaces(target.ID, faces, target.FaceAssetID == nil); err != nil {
		return nil, platformservice.WrapInternalError("移动人脸失败", err)
	}

	resp, err := s.reload(target.ID)
	if err != nil {
		return nil, err
	}
	for range faces {
		result = append(result, *resp)
	}
	return result, nil
}

// UnassignFaces 解除人脸与人物的关联，结果 id 为资源 id
func (s *Service) UnassignFaces(caller *dto.AuthUser, req moduledto.AssetFaceUpdateRequest) []moduledto.BulkIDResponse {
	results := make([]moduledto.BulkIDResponse, 0, len(req.Data))
	for _, item := range req.Data {
		person, err := s.findOwned(caller.ID, item.PersonID)
		if err != nil {
			results = append(results, bulkFailure(item.AssetID, err))
			continue
		}
		affected, err := s.personStore.UnassignFace(person.ID, item.AssetID)
		if err != nil {
			log.Printf("❌ 解除人脸关联失败 person=%s asset=%s: %v", person.ID, item.AssetID, err)
			results = append(results, moduledto.BulkIDResponse{ID: item.AssetID, Error: moduledto.BulkIDErrorUnknown})
			continue
		}
		if affected == 0 {
			results = append(results, moduledto.BulkIDResponse{ID: item.AssetID, Error: moduledto.BulkIDErrorNotFound})
			continue
		}
		results = append(results, moduledto.BulkIDResponse{ID: item.AssetID, Success: true})
	}
	return results
}

// MergePerson 依次把 ids 中的人物合并到 id。
// 目标没有名字或封面时沿用被合并人物的，被合并人物随后删除。
func (s *Service) MergePerson(caller *dto.AuthUser, id string, req moduledto.MergePersonRequest) ([]moduledto.BulkIDResponse, error) {
	target, err := s.findOwned(caller.ID, id)
	if err != nil {
		return nil, err
	}

	results := make([]moduledto.BulkIDResponse, 0, len(req.IDs))
	for _, mergeID := range req.IDs {
		if mergeID == target.ID {
			results = append(results, moduledto.BulkIDResponse{ID: mergeID, Error: moduledto.BulkIDErrorDuplicate})
			continue
		}
		source, err := s.findOwned(caller.ID, mergeID)
		if err != nil {
			results = append(results, bulkFailure(mergeID, err))
			continue
		}

		fields := make(map[string]any)
		if target.Name == "" && source.Name != "" {
			fields["name"] = source.Name
		}
		if target.FaceAssetID == nil && source.FaceAssetID != nil {
			fields["face_asset_id"] = *source.FaceAssetID
		}
		if target.ThumbnailPath == "" && source.ThumbnailPath != "" {
			fields["thumbnail_path"] = source.ThumbnailPath
		}

		if err := s.personStore.MergeInto(target.ID, source.ID, fields); err != nil {
			log.Printf("❌ 合并人物失败 %s -> %s: %v", source.ID, target.ID, err)
			results = append(results, moduledto.BulkIDResponse{ID: mergeID, Error: moduledto.BulkIDErrorUnknown})
			continue
		}

		if _, ok := fields["name"]; ok {
			target.Name = source.Name
		}
		if _, ok := fields["face_asset_id"]; ok {
			target.FaceAssetID = source.FaceAssetID
		}
		if _, ok := fields["thumbnail_path"]; ok {
			target.ThumbnailPath = source.ThumbnailPath
		}
		results = append(results, moduledto.BulkIDResponse{ID: mergeID, Success: true})
	}
	return results, nil
}
