package service

import (
	"github.com/jesb1n/immich/internal/modules/serverinfo/repo"
)

// DiskUsage 文件系统容量，单位字节
type DiskUsage struct {
	Total     int64
	Free      int64
	Available int64
}

// DiskStatter 读取给定路径所在文件系统的容量
type DiskStatter interface {
	Stat(path string) (DiskUsage, error)
}

// FeatureSource 提供功能开关，默认从配置读取
type FeatureSource func() Features

type Features struct {
	ConfigFile        bool
	ClipEncode        bool
	FacialRecognition bool
	Sidecar           bool
	Search            bool
	TagImage          bool
	OAuth             bool
	OAuthAutoLaunch   bool
	PasswordLogin     bool
}

type Service struct {
	statsStore  repo.StatsStore
	disk        DiskStatter
	libraryPath func() string
	features    FeatureSource
}

func New(statsStore repo.StatsStore, disk DiskStatter, libraryPath func() string, features FeatureSource) *Service {
	return &Service{
		statsStore:  statsStore,
		disk:        disk,
		libraryPath: libraryPath,
		features:    features,
	}
}
