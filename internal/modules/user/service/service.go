package service

import "github.com/jesb1n/immich/internal/modules/user/repo"

type Service struct {
	userStore repo.UserStore
}

func New(userStore repo.UserStore) *Service {
	return &Service{userStore: userStore}
}
