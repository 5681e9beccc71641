package handler

import (
	"net/http"

	"github.com/jesb1n/immich/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

func (h *Handler) PingServer(c *gin.Context) {
	c.JSON(http.StatusOK, h.serverInfoService.Ping())
}

// GetServerInfo 媒体库磁盘使用情况
func (h *Handler) GetServerInfo(c *gin.Context) {
	info, err := h.serverInfoService.GetInfo()
	if err != nil {
		httpx.WriteServiceError(c, err, "获取服务器信息失败")
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handler) GetServerVersion(c *gin.Context) {
	c.JSON(http.StatusOK, h.serverInfoService.GetVersion())
}

// GetStats 各用户资源统计，仅管理员
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.serverInfoService.GetStats()
	if err != nil {
		httpx.WriteServiceError(c, err, "统计资源数据失败")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetSupportedMediaTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.serverInfoService.GetSupportedMediaTypes())
}

func (h *Handler) GetServerFeatures(c *gin.Context) {
	c.JSON(http.StatusOK, h.serverInfoService.GetFeatures())
}
