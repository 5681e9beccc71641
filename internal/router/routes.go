package router

import (
	"net/http"

	"github.com/jesb1n/immich/internal/middleware"
	"github.com/jesb1n/immich/internal/modules"
	personhandler "github.com/jesb1n/immich/internal/modules/person/handler"
	persondto "github.com/jesb1n/immich/internal/modules/person/dto"
	serverinfohandler "github.com/jesb1n/immich/internal/modules/serverinfo/handler"
	serverinfodto "github.com/jesb1n/immich/internal/modules/serverinfo/dto"

	"github.com/gin-gonic/gin"
)

// Access 路由的访问级别
type Access string

const (
	AccessPublic Access = "public"
	AccessUser   Access = "user"
	AccessAdmin  Access = "admin"
)

// HandlerSelector 从已装配的模块中取出处理函数
type HandlerSelector func(m *modules.AppModules) gin.HandlerFunc

// Route 一条 /api 下的路由声明。
// 同一张表既用于注册 gin 路由，也用于导出接口描述文档。
type Route struct {
	Method  string
	Path    string
	Tag     string
	Summary string
	Access  Access

	// 以下类型仅用于描述请求/响应结构，零值即可
	Params   any
	Query    any
	Body     any
	Response any
	// Status 成功时的状态码，0 表示 200
	Status int
	// Produces 非 JSON 响应的 MIME 类型，例如缩略图
	Produces string

	Middleware []gin.HandlerFunc
	Handler    HandlerSelector
}

func serverInfo(action func(*serverinfohandler.Handler, *gin.Context)) HandlerSelector {
	return func(m *modules.AppModules) gin.HandlerFunc {
		h := m.ServerInfo.Handler
		return func(c *gin.Context) { action(h, c) }
	}
}

func person(action func(*personhandler.Handler, *gin.Context)) HandlerSelector {
	return func(m *modules.AppModules) gin.HandlerFunc {
		h := m.Person.Handler
		return func(c *gin.Context) { action(h, c) }
	}
}

const thumbnailCacheControl = "private, max-age=86400"

// APIRoutes 全部接口路由
func APIRoutes() []Route {
	return []Route{
		{
			Method: http.MethodGet, Path: "/ping", Tag: "server-info", Summary: "存活检查",
			Access: AccessPublic, Response: serverinfodto.ServerPingResponse{},
			Handler: serverInfo((*serverinfohandler.Handler).PingServer),
		},
		{
			Method: http.MethodGet, Path: "/server-info/ping", Tag: "server-info", Summary: "存活检查",
			Access: AccessPublic, Response: serverinfodto.ServerPingResponse{},
			Handler: serverInfo((*serverinfohandler.Handler).PingServer),
		},
		{
			Method: http.MethodGet, Path: "/server-info", Tag: "server-info", Summary: "媒体库磁盘使用情况",
			Access: AccessUser, Response: serverinfodto.ServerInfoResponse{},
			Handler: serverInfo((*serverinfohandler.Handler).GetServerInfo),
		},
		{
			Method: http.MethodGet, Path: "/server-info/version", Tag: "server-info", Summary: "服务端版本",
			Access: AccessPublic, Response: serverinfodto.ServerVersionResponse{},
			Handler: serverInfo((*serverinfohandler.Handler).GetServerVersion),
		},
		{
			Method: http.MethodGet, Path: "/server-info/stats", Tag: "server-info", Summary: "各用户资源统计",
			Access: AccessAdmin, Response: serverinfodto.ServerStatsResponse{},
			Handler: serverInfo((*serverinfohandler.Handler).GetStats),
		},
		{
			Method: http.MethodGet, Path: "/server-info/media-types", Tag: "server-info", Summary: "支持的媒体类型",
			Access: AccessPublic, Response: serverinfodto.ServerMediaTypesResponse{},
			Handler: serverInfo((*serverinfohandler.Handler).GetSupportedMediaTypes),
		},
		{
			Method: http.MethodGet, Path: "/server-info/features", Tag: "server-info", Summary: "功能开关",
			Access: AccessPublic, Response: serverinfodto.ServerFeaturesResponse{},
			Handler: serverInfo((*serverinfohandler.Handler).GetServerFeatures),
		},

		{
			Method: http.MethodGet, Path: "/person", Tag: "person", Summary: "人物列表",
			Access: AccessUser, Query: persondto.PersonSearchRequest{}, Response: persondto.PeopleResponse{},
			Handler: person((*personhandler.Handler).GetAllPeople),
		},
		{
			Method: http.MethodPost, Path: "/person", Tag: "person", Summary: "新建人物",
			Access: AccessUser, Body: persondto.PersonCreateRequest{}, Response: persondto.PersonResponse{}, Status: http.StatusCreated,
			Handler: person((*personhandler.Handler).CreatePerson),
		},
		{
			Method: http.MethodPut, Path: "/person", Tag: "person", Summary: "批量更新人物",
			Access: AccessUser, Body: persondto.PeopleUpdateRequest{}, Response: []persondto.BulkIDResponse{},
			Handler: person((*personhandler.Handler).UpdatePeople),
		},
		{
			Method: http.MethodDelete, Path: "/person", Tag: "person", Summary: "批量解除人脸关联",
			Access: AccessUser, Body: persondto.AssetFaceUpdateRequest{}, Response: []persondto.BulkIDResponse{},
			Handler: person((*personhandler.Handler).UnassignFaces),
		},
		{
			Method: http.MethodGet, Path: "/person/:id", Tag: "person", Summary: "获取人物",
			Access: AccessUser, Params: persondto.UUIDParam{}, Response: persondto.PersonResponse{},
			Handler: person((*personhandler.Handler).GetPerson),
		},
		{
			Method: http.MethodPut, Path: "/person/:id", Tag: "person", Summary: "更新人物",
			Access: AccessUser, Params: persondto.UUIDParam{}, Body: persondto.PersonUpdateRequest{}, Response: persondto.PersonResponse{},
			Handler: person((*personhandler.Handler).UpdatePerson),
		},
		{
			Method: http.MethodGet, Path: "/person/:id/statistics", Tag: "person", Summary: "人物统计",
			Access: AccessUser, Params: persondto.UUIDParam{}, Response: persondto.PersonStatisticsResponse{},
			Handler: person((*personhandler.Handler).GetPersonStatistics),
		},
		{
			Method: http.MethodGet, Path: "/person/:id/thumbnail", Tag: "person", Summary: "人物缩略图",
			Access: AccessUser, Params: persondto.UUIDParam{}, Produces: "image/jpeg",
			Middleware: []gin.HandlerFunc{middleware.CacheControl(thumbnailCacheControl)},
			Handler:    person((*personhandler.Handler).GetPersonThumbnail),
		},
		{
			Method: http.MethodGet, Path: "/person/:id/assets", Tag: "person", Summary: "人物出现的资源",
			Access: AccessUser, Params: persondto.UUIDParam{}, Response: []persondto.AssetResponse{},
			Handler: person((*personhandler.Handler).GetPersonAssets),
		},
		{
			Method: http.MethodGet, Path: "/person/:id/:assetId/faceasset", Tag: "person", Summary: "人脸框",
			Access: AccessUser, Params: persondto.AssetFaceParam{}, Response: persondto.AssetFaceBoxResponse{},
			Handler: person((*personhandler.Handler).GetFaceEntity),
		},
		{
			Method: http.MethodPut, Path: "/person/:id/reassign", Tag: "person", Summary: "移动人脸到该人物",
			Access: AccessUser, Params: persondto.UUIDParam{}, Body: persondto.AssetFaceUpdateRequest{}, Response: []persondto.PersonResponse{},
			Handler: person((*personhandler.Handler).ReassignFaces),
		},
		{
			Method: http.MethodPost, Path: "/person/:id/merge", Tag: "person", Summary: "合并人物",
			Access: AccessUser, Params: persondto.UUIDParam{}, Body: persondto.MergePersonRequest{}, Response: []persondto.BulkIDResponse{},
			Handler: person((*personhandler.Handler).MergePerson),
		},
	}
}
