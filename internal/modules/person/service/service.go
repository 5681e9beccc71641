package service

import "github.com/jesb1n/immich/internal/modules/person/repo"

// Settings 运行期可变的人物模块配置
type Settings struct {
	ThumbnailPath string
	MaxAssets     int
}

type SettingsSource func() Settings

type Service struct {
	personStore repo.PersonStore
	settings    SettingsSource
}

func New(personStore repo.PersonStore, settings SettingsSource) *Service {
	return &Service{personStore: personStore, settings: settings}
}
