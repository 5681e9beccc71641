package service

import (
	"time"

	"github.com/jesb1n/immich/internal/model"
	moduledto "github.com/jesb1n/immich/internal/modules/person/dto"
)

const birthDateLayout = "2006-01-02"

func toPersonResponse(p *model.Person) moduledto.PersonResponse {
	var birthDate *string
	if p.BirthDate != nil {
		s := p.BirthDate.Format(birthDateLayout)
		birthDate = &s
	}
	return moduledto.PersonResponse{
		ID:            p.ID,
		Name:          p.Name,
		BirthDate:     birthDate,
		ThumbnailPath: p.ThumbnailPath,
		IsHidden:      p.IsHidden,
	}
}

func toAssetResponse(a *model.Asset, people []model.Person) moduledto.AssetResponse {
	resp := moduledto.AssetResponse{
		ID:               a.ID,
		OwnerID:          a.OwnerID,
		Type:             a.Type,
		OriginalPath:     a.OriginalPath,
		OriginalFileName: a.OriginalFileName,
		FileSize:         a.FileSize,
		FileCreatedAt:    a.FileCreatedAt,
		IsFavorite:       a.IsFavorite,
		IsArchived:       a.IsArchived,
		People:           make([]moduledto.PersonResponse, 0, len(people)),
	}
	for i := range people {
		resp.People = append(resp.People, toPersonResponse(&people[i]))
	}
	return resp
}

// parseBirthDate 空字符串表示清除生日
func parseBirthDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(birthDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
