package dto

type ServerPingResponse struct {
	Res string `json:"res"`
}

type ServerInfoResponse struct {
	DiskSize            string  `json:"diskSize"`
	DiskUse             string  `json:"diskUse"`
	DiskAvailable       string  `json:"diskAvailable"`
	DiskSizeRaw         int64   `json:"diskSizeRaw"`
	DiskUseRaw          int64   `json:"diskUseRaw"`
	DiskAvailableRaw    int64   `json:"diskAvailableRaw"`
	DiskUsagePercentage float64 `json:"diskUsagePercentage"`
}

type ServerVersionResponse struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

type UsageByUser struct {
	UserID        string `json:"userId"`
	UserFirstName string `json:"userFirstName"`
	UserLastName  string `json:"userLastName"`
	Photos        int    `json:"photos"`
	Videos        int    `json:"videos"`
	Usage         int64  `json:"usage"`
}

type ServerStatsResponse struct {
	Photos      int           `json:"photos"`
	Videos      int           `json:"videos"`
	Usage       int64         `json:"usage"`
	UsageByUser []UsageByUser `json:"usageByUser"`
}

type ServerMediaTypesResponse struct {
	Video   []string `json:"video"`
	Image   []string `json:"image"`
	Sidecar []string `json:"sidecar"`
}

type ServerFeaturesResponse struct {
	ConfigFile        bool `json:"configFile"`
	ClipEncode        bool `json:"clipEncode"`
	FacialRecognition bool `json:"facialRecognition"`
	Sidecar           bool `json:"sidecar"`
	Search            bool `json:"search"`
	TagImage          bool `json:"tagImage"`
	OAuth             bool `json:"oauth"`
	OAuthAutoLaunch   bool `json:"oauthAutoLaunch"`
	PasswordLogin     bool `json:"passwordLogin"`
}
