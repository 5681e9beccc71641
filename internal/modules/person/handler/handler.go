package handler

import personservice "github.com/jesb1n/immich/internal/modules/person/service"

type Handler struct {
	personService *personservice.Service
}

func New(personService *personservice.Service) *Handler {
	return &Handler{personService: personService}
}
