package service

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jesb1n/immich/internal/consts"
	"github.com/jesb1n/immich/internal/dto"
	platformservice "github.com/jesb1n/immich/internal/platform/service"
	"github.com/jesb1n/immich/internal/utils"
)

const defaultThumbnailType = "image/jpeg"

// GetThumbnail 打开人物缩略图，调用方负责关闭返回的流
func (s *Service) GetThumbnail(caller *dto.AuthUser, id string) (*dto.ReadStream, error) {
	person, err := s.findOwned(caller.ID, id)
	if err != nil {
		return nil, err
	}
	if person.ThumbnailPath == "" {
		return nil, platformservice.NewNotFoundError("人物缩略图不存在")
	}

	fullPath, err := s.resolveThumbnailPath(person.ThumbnailPath)
	if err != nil {
		return nil, &platformservice.ServiceError{
			Code:    platformservice.ErrorCodeNotFound,
			Message: "人物缩略图不存在",
			Err:     err,
		}
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, platformservice.NewNotFoundError("人物缩略图不存在")
		}
		return nil, platformservice.WrapInternalError("读取人物缩略图失败", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, platformservice.WrapInternalError("读取人物缩略图失败", err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, platformservice.NewNotFoundError("人物缩略图不存在")
	}

	return &dto.ReadStream{
		Stream: file,
		Type:   thumbnailType(fullPath),
		Length: info.Size(),
	}, nil
}

// resolveThumbnailPath 相对路径基于缩略图目录，绝对路径也必须位于缩略图目录内
func (s *Service) resolveThumbnailPath(p string) (string, error) {
	root := s.settings().ThumbnailPath
	rel := p
	if filepath.IsAbs(p) {
		rootAbs, err := filepath.Abs(root)
		if err != nil {
			return "", err
		}
		if rel, err = filepath.Rel(rootAbs, p); err != nil {
			return "", err
		}
	}
	return utils.SecureJoin(root, rel)
}

func thumbnailType(p string) string {
	if mime, ok := consts.ImageMimeTypes[strings.ToLower(filepath.Ext(p))]; ok {
		return mime
	}
	return defaultThumbnailType
}
