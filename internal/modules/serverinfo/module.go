package serverinfo

import (
	"github.com/jesb1n/immich/internal/config"
	"github.com/jesb1n/immich/internal/modules/serverinfo/handler"
	"github.com/jesb1n/immich/internal/modules/serverinfo/repo"
	"github.com/jesb1n/immich/internal/modules/serverinfo/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(statsStore repo.StatsStore) *Module {
	moduleService := service.New(statsStore, service.StatfsDisk{}, libraryPath, featuresFromConfig)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}

func libraryPath() string {
	return config.Get().Storage.LibraryPath
}

func featuresFromConfig() service.Features {
	f := config.Get().Features
	return service.Features{
		ConfigFile:        config.ConfigFileLoaded(),
		ClipEncode:        f.ClipEncode,
		FacialRecognition: f.FacialRecognition,
		Sidecar:           f.Sidecar,
		Search:            f.Search,
		TagImage:          f.TagImage,
		OAuth:             f.OAuth,
		OAuthAutoLaunch:   f.OAuthAutoLaunch,
		PasswordLogin:     f.PasswordLogin,
	}
}
