package handler

import serverinfoservice "github.com/jesb1n/immich/internal/modules/serverinfo/service"

type Handler struct {
	serverInfoService *serverinfoservice.Service
}

func New(serverInfoService *serverinfoservice.Service) *Handler {
	return &Handler{serverInfoService: serverInfoService}
}
