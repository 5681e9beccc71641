package modules

import (
	"github.com/jesb1n/immich/internal/modules/person"
	personrepo "github.com/jesb1n/immich/internal/modules/person/repo"
	"github.com/jesb1n/immich/internal/modules/serverinfo"
	serverinforepo "github.com/jesb1n/immich/internal/modules/serverinfo/repo"
	"github.com/jesb1n/immich/internal/modules/user"
	userrepo "github.com/jesb1n/immich/internal/modules/user/repo"
)

type AppModules struct {
	User       *user.Module
	ServerInfo *serverinfo.Module
	Person     *person.Module
}

func New(
	userStore userrepo.UserStore,
	statsStore serverinforepo.StatsStore,
	personStore personrepo.PersonStore,
) *AppModules {
	return &AppModules{
		User:       user.New(userStore),
		ServerInfo: serverinfo.New(statsStore),
		Person:     person.New(personStore),
	}
}
