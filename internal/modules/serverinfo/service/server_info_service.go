package service

import (
	"math"
	"sort"

	"github.com/jesb1n/immich/internal/consts"
	moduledto "github.com/jesb1n/immich/internal/modules/serverinfo/dto"
	platformservice "github.com/jesb1n/immich/internal/platform/service"

	"github.com/dustin/go-humanize"
)

func (s *Service) Ping() moduledto.ServerPingResponse {
	return moduledto.ServerPingResponse{Res: "pong"}
}

// GetInfo 媒体库所在磁盘的使用情况
func (s *Service) GetInfo() (*moduledto.ServerInfoResponse, error) {
	usage, err := s.disk.Stat(s.libraryPath())
	if err != nil {
		return nil, platformservice.WrapInternalError("读取磁盘信息失败", err)
	}

	used := usage.Total - usage.Free
	if used < 0 {
		used = 0
	}
	percentage := 0.0
	if usage.Total > 0 {
		percentage = math.Round(float64(used)/float64(usage.Total)*100*100) / 100
	}

	return &moduledto.ServerInfoResponse{
		DiskSize:            humanize.IBytes(uint64(usage.Total)),
		DiskUse:             humanize.IBytes(uint64(used)),
		DiskAvailable:       humanize.IBytes(uint64(usage.Available)),
		DiskSizeRaw:         usage.Total,
		DiskUseRaw:          used,
		DiskAvailableRaw:    usage.Available,
		DiskUsagePercentage: percentage,
	}, nil
}

func (s *Service) GetVersion() moduledto.ServerVersionResponse {
	return moduledto.ServerVersionResponse{
		Major: consts.ServerVersion.Major,
		Minor: consts.ServerVersion.Minor,
		Patch: consts.ServerVersion.Patch,
	}
}

// GetStats 汇总所有用户的资源数量与占用
func (s *Service) GetStats() (*moduledto.ServerStatsResponse, error) {
	rows, err := s.statsStore.UsageByUser()
	if err != nil {
		return nil, platformservice.WrapInternalError("统计资源数据失败", err)
	}

	resp := &moduledto.ServerStatsResponse{UsageByUser: make([]moduledto.UsageByUser, 0, len(rows))}
	for _, row := range rows {
		resp.Photos += row.Photos
		resp.Videos += row.Videos
		resp.Usage += row.Usage
		resp.UsageByUser = append(resp.UsageByUser, moduledto.UsageByUser{
			UserID:        row.UserID,
			UserFirstName: row.FirstName,
			UserLastName:  row.LastName,
			Photos:        row.Photos,
			Videos:        row.Videos,
			Usage:         row.Usage,
		})
	}
	return resp, nil
}

func (s *Service) GetSupportedMediaTypes() moduledto.ServerMediaTypesResponse {
	return moduledto.ServerMediaTypesResponse{
		Video:   sortedKeys(consts.VideoMimeTypes),
		Image:   sortedKeys(consts.ImageMimeTypes),
		Sidecar: sortedKeys(consts.SidecarMimeTypes),
	}
}

func (s *Service) GetFeatures() moduledto.ServerFeaturesResponse {
	f := s.features()
	return moduledto.ServerFeaturesResponse{
		ConfigFile:        f.ConfigFile,
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

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
