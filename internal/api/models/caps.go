package models

// PlatformPath selects a hardware platform.
type PlatformPath struct {
	Platform string `path:"platform" example:"cannonlake" doc:"Hardware platform"`
}

// PlatformInfo describes one registered platform.
type PlatformInfo struct {
	Name       string `json:"name" example:"cannonlake" doc:"Platform name"`
	Generation string `json:"generation" example:"gen10" doc:"Capability generation"`
}

// PlatformsData lists the registered platforms.
type PlatformsData struct {
	Platforms []PlatformInfo `json:"platforms" doc:"Registered platforms"`
	Count     int            `json:"count" example:"4" doc:"Number of platforms"`
}

// PlatformsResponse is the response of the platform list.
type PlatformsResponse struct {
	Body PlatformsData
}

// ProfileInfo lists the entrypoints of one profile.
type ProfileInfo struct {
	Profile     string   `json:"profile" example:"HEVCMain" doc:"Codec profile"`
	Entrypoints []string `json:"entrypoints" example:"[\"VLD\",\"EncSlice\"]" doc:"Registered entrypoints"`
}

// ProfilesData lists the profiles of a platform.
type ProfilesData struct {
	Platform string        `json:"platform" example:"cannonlake" doc:"Hardware platform"`
	Profiles []ProfileInfo `json:"profiles" doc:"Registered profiles"`
}

// ProfilesResponse is the response of the profile list.
type ProfilesResponse struct {
	Body ProfilesData
}

// EntryPath selects a registered profile entrypoint.
type EntryPath struct {
	Platform   string `path:"platform" example:"cannonlake" doc:"Hardware platform"`
	Profile    string `path:"profile" example:"HEVCMain" doc:"Codec profile"`
	Entrypoint string `path:"entrypoint" example:"EncSliceLP" doc:"Entrypoint"`
}

// AttributeValue is one resolved attribute.
type AttributeValue struct {
	Type  string `json:"type" example:"EncMaxRefFrames" doc:"Attribute type"`
	Value uint32 `json:"value" example:"262148" doc:"Attribute value"`
	Hex   string `json:"hex" example:"0x00040004" doc:"Attribute value in hex"`
}

// EntryData describes one registered profile entrypoint.
type EntryData struct {
	Profile     string           `json:"profile" example:"HEVCMain" doc:"Codec profile"`
	Entrypoint  string           `json:"entrypoint" example:"EncSliceLP" doc:"Entrypoint"`
	ConfigStart int              `json:"config_start" doc:"First config index"`
	ConfigCount int              `json:"config_count" doc:"Number of configs"`
	Attributes  []AttributeValue `json:"attributes" doc:"Stored attributes"`
	RCModes     []string         `json:"rc_modes,omitempty" doc:"Rate control modes of the encode configs"`
	DecConfigs  []DecConfig      `json:"dec_configs,omitempty" doc:"Decode configs"`
}

// DecConfig is one decode config.
type DecConfig struct {
	SliceMode   uint32 `json:"slice_mode" doc:"Decode slice mode"`
	ProcessMode uint32 `json:"process_mode" doc:"Decode processing mode"`
}

// EntryResponse is the response of the entry detail.
type EntryResponse struct {
	Body EntryData
}

// AttributeRequest queries one attribute.
type AttributeRequest struct {
	Platform   string `path:"platform" example:"cannonlake" doc:"Hardware platform"`
	Profile    string `query:"profile" required:"true" example:"HEVCMain" doc:"Codec profile"`
	Entrypoint string `query:"entrypoint" required:"true" example:"EncSlice" doc:"Entrypoint"`
	Attribute  string `query:"attribute" required:"true" example:"EncMaxRefFrames" doc:"Attribute type"`
}

// AttributeData is the result of an attribute query. Inapplicable
// attributes report status UNSUPPORTED_ATTRIBUTE with value 0x80000000.
type AttributeData struct {
	AttributeValue
	Status string `json:"status" example:"SUCCESS" doc:"Query status"`
}

// AttributeResponse is the response of an attribute query.
type AttributeResponse struct {
	Body AttributeData
}

// EncodeCheckRequest asks whether an encode size is supported.
type EncodeCheckRequest struct {
	Platform string `path:"platform" example:"cannonlake" doc:"Hardware platform"`
	Body     struct {
		Profile string `json:"profile" example:"H264Main" doc:"Codec profile"`
		Width   uint32 `json:"width" example:"1920" doc:"Frame width"`
		Height  uint32 `json:"height" example:"1088" doc:"Frame height"`
	}
}

// DecodeCheckRequest asks whether a decode size is supported.
type DecodeCheckRequest struct {
	Platform string `path:"platform" example:"cannonlake" doc:"Hardware platform"`
	Body     struct {
		CodecMode string `json:"codec_mode,omitempty" example:"hevc" doc:"Decoder codec mode, defaults to the mode of the profile"`
		Profile   string `json:"profile" example:"HEVCMain" doc:"Codec profile"`
		Width     uint32 `json:"width" example:"3840" doc:"Frame width"`
		Height    uint32 `json:"height" example:"2160" doc:"Frame height"`
	}
}

// ResolutionData is the result of a resolution check.
type ResolutionData struct {
	Supported bool   `json:"supported" doc:"Whether the size is accepted"`
	Status    string `json:"status" example:"RESOLUTION_NOT_SUPPORTED" doc:"Check status"`
	Message   string `json:"message,omitempty" doc:"Rejection reason"`
}

// ResolutionResponse is the response of a resolution check.
type ResolutionResponse struct {
	Body ResolutionData
}

// ROIRequest queries the AVC ROI limit of a rate control mode.
type ROIRequest struct {
	Platform string `path:"platform" example:"cannonlake" doc:"Hardware platform"`
	RCMode   string `query:"rc_mode" default:"CQP" example:"CBR" doc:"Rate control mode"`
}

// ROIData is the AVC ROI limit.
type ROIData struct {
	RCMode    string `json:"rc_mode" example:"CBR" doc:"Rate control mode"`
	MaxNum    int    `json:"max_num" example:"8" doc:"Maximum number of regions"`
	IsDeltaQP bool   `json:"is_delta_qp" doc:"Regions carry a QP delta"`
}

// ROIResponse is the response of the ROI query.
type ROIResponse struct {
	Body ROIData
}

// DiffRequest compares two platforms.
type DiffRequest struct {
	From string `query:"from" required:"true" example:"skylake" doc:"Base platform"`
	To   string `query:"to" required:"true" example:"icelake" doc:"Compared platform"`
}
