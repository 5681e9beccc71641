package handler

import (
	"net/http"

	"github.com/jesb1n/immich/internal/modules/common/httpx"
	moduledto "github.com/jesb1n/immich/internal/modules/person/dto"

	"github.com/gin-gonic/gin"
)

// GetAllPeople 人物列表，withHidden/includeHidden 任一为 true 时包含隐藏人物
func (h *Handler) GetAllPeople(c *gin.Context) {
	var req moduledto.PersonSearchRequest
	if !httpx.BindQuery(c, &req) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}

	resp, err := h.personService.GetAll(caller, req.WithHidden || req.IncludeHidden)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取人物列表失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreatePerson(c *gin.Context) {
	var req moduledto.PersonCreateRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}

	resp, err := h.personService.CreatePerson(caller, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建人物失败")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) UpdatePeople(c *gin.Context) {
	var req moduledto.PeopleUpdateRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.personService.UpdatePeople(caller, req))
}

func (h *Handler) UnassignFaces(c *gin.Context) {
	var req moduledto.AssetFaceUpdateRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.personService.UnassignFaces(caller, req))
}

func (h *Handler) GetPerson(c *gin.Context) {
	var param moduledto.UUIDParam
	if !httpx.BindURI(c, &param) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}

	resp, err := h.personService.GetByID(caller, param.ID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取人物失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UpdatePerson(c *gin.Context) {
	var param moduledto.UUIDParam
	if !httpx.BindURI(c, &param) {
		return
	}
	var req moduledto.PersonUpdateRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}

	resp, err := h.personService.Update(caller, param.ID, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新人物失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetPersonStatistics(c *gin.Context) {
	var param moduledto.UUIDParam
	if !httpx.BindURI(c, &param) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}

	resp, err := h.personService.GetStatistics(caller, param.ID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取人物统计失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPersonThumbnail 输出缩略图二进制流，流在 WriteStream 中关闭
func (h *Handler) GetPersonThumbnail(c *gin.Context) {
	var param moduledto.UUIDParam
	if !httpx.BindURI(c, &param) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}

	stream, err := h.personService.GetThumbnail(caller, param.ID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取人物缩略图失败")
		return
	}
	httpx.WriteStream(c, stream, nil)
}

func (h *Handler) GetPersonAssets(c *gin.Context) {
	var param moduledto.UUIDParam
	if !httpx.BindURI(c, &param) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}

	resp, err := h.personService.GetAssets(caller, param.ID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取人物资源失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetFaceEntity(c *gin.Context) {
	var param moduledto.AssetFaceParam
	if !httpx.BindURI(c, &param) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}

	resp, err := h.personService.GetFaceEntity(caller, param.ID, param.AssetID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取人脸信息失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ReassignFaces(c *gin.Context) {
	var param moduledto.UUIDParam
	if !httpx.BindURI(c, &param) {
		return
	}
	var req moduledto.AssetFaceUpdateRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}

	resp, err := h.personService.ReassignFaces(caller, param.ID, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "移动人脸失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) MergePerson(c *gin.Context) {
	var param moduledto.UUIDParam
	if !httpx.BindURI(c, &param) {
		return
	}
	var req moduledto.MergePersonRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	caller, ok := httpx.AuthUser(c)
	if !ok {
		return
	}

	resp, err := h.personService.MergePerson(caller, param.ID, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "合并人物失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}
