package person

import (
	"github.com/jesb1n/immich/internal/config"
	"github.com/jesb1n/immich/internal/modules/person/handler"
	"github.com/jesb1n/immich/internal/modules/person/repo"
	"github.com/jesb1n/immich/internal/modules/person/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(personStore repo.PersonStore) *Module {
	moduleService := service.New(personStore, settingsFromConfig)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}

func settingsFromConfig() service.Settings {
	cfg := config.Get()
	return service.Settings{
		ThumbnailPath: cfg.Storage.ThumbnailPath,
		MaxAssets:     cfg.Person.MaxAssets,
	}
}
