//go:build wireinject
// +build wireinject

package di

import (
	"github.com/jesb1n/immich/internal/modules"
	personrepo "github.com/jesb1n/immich/internal/modules/person/repo"
	serverinforepo "github.com/jesb1n/immich/internal/modules/serverinfo/repo"
	userrepo "github.com/jesb1n/immich/internal/modules/user/repo"
	"github.com/jesb1n/immich/internal/router"

	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeApplication(gormDB *gorm.DB) (*Application, error) {
	wire.Build(
		userrepo.NewUserRepository,
		serverinforepo.NewStatsRepository,
		personrepo.NewPersonRepository,
		modules.New,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
