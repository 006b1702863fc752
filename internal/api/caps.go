package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/mediacaps/internal/api/models"
	"github.com/smazurov/mediacaps/internal/caps"
)

// capsError maps a capability error to an HTTP error.
func capsError(err error) error {
	switch caps.StatusOf(err) {
	case caps.StatusInvalidParameter:
		return huma.Error400BadRequest(err.Error(), err)
	case caps.StatusUnsupportedProfile, caps.StatusUnsupportedEntrypoint:
		return huma.Error404NotFound(err.Error(), err)
	default:
		return huma.Error500InternalServerError("capability query failed", err)
	}
}

func parseEntry(profile, entrypoint string) (caps.Profile, caps.Entrypoint, error) {
	p, err := caps.ParseProfile(profile)
	if err != nil {
		return 0, 0, huma.Error400BadRequest(err.Error(), err)
	}
	e, err := caps.ParseEntrypoint(entrypoint)
	if err != nil {
		return 0, 0, huma.Error400BadRequest(err.Error(), err)
	}
	return p, e, nil
}

func attributeValue(t caps.AttribType, v uint32) models.AttributeValue {
	return models.AttributeValue{Type: t.String(), Value: v, Hex: fmt.Sprintf("0x%08x", v)}
}

func (s *Server) registerCapsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-platforms",
		Method:      http.MethodGet,
		Path:        "/api/platforms",
		Summary:     "List Platforms",
		Description: "List the platforms with registered capabilities",
		Tags:        []string{"capabilities"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*models.PlatformsResponse, error) {
		gens := make(map[string]string)
		for _, g := range caps.Generations() {
			for _, p := range g.Platforms {
				gens[p.String()] = g.Name
			}
		}

		platforms := s.options.Registry.Platforms()
		out := make([]models.PlatformInfo, 0, len(platforms))
		for _, p := range platforms {
			out = append(out, models.PlatformInfo{Name: p.String(), Generation: gens[p.String()]})
		}
		return &models.PlatformsResponse{
			Body: models.PlatformsData{Platforms: out, Count: len(out)},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "list-profiles",
		Method:      http.MethodGet,
		Path:        "/api/platforms/{platform}/profiles",
		Summary:     "List Profiles",
		Description: "List the profiles and entrypoints registered for a platform",
		Tags:        []string{"capabilities"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 500},
	}, func(_ context.Context, input *models.PlatformPath) (*models.ProfilesResponse, error) {
		sess, err := s.session(input.Platform)
		if err != nil {
			return nil, err
		}

		profiles := sess.Caps.Profiles()
		out := make([]models.ProfileInfo, 0, len(profiles))
		for _, p := range profiles {
			info := models.ProfileInfo{Profile: p.String()}
			for _, e := range sess.Caps.Entrypoints(p) {
				info.Entrypoints = append(info.Entrypoints, e.String())
			}
			out = append(out, info)
		}
		return &models.ProfilesResponse{
			Body: models.ProfilesData{Platform: sess.Platform.String(), Profiles: out},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-entry",
		Method:      http.MethodGet,
		Path:        "/api/platforms/{platform}/profiles/{profile}/{entrypoint}",
		Summary:     "Get Profile Entrypoint",
		Description: "Get the stored attributes and configs of a registered profile entrypoint",
		Tags:        []string{"capabilities"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 404, 500},
	}, func(_ context.Context, input *models.EntryPath) (*models.EntryResponse, error) {
		sess, err := s.session(input.Platform)
		if err != nil {
			return nil, err
		}
		profile, entrypoint, err := parseEntry(input.Profile, input.Entrypoint)
		if err != nil {
			return nil, err
		}

		entry, ok := sess.Caps.Entry(profile, entrypoint)
		if !ok {
			return nil, huma.Error404NotFound(fmt.Sprintf("%s/%s is not registered on %s", profile, entrypoint, sess.Platform))
		}

		data := models.EntryData{
			Profile:     entry.Profile.String(),
			Entrypoint:  entry.Entrypoint.String(),
			ConfigStart: entry.ConfigStart,
			ConfigCount: entry.ConfigCount,
		}
		for _, a := range entry.Attributes.List() {
			data.Attributes = append(data.Attributes, attributeValue(a.Type, a.Value))
		}

		if entrypoint == caps.EntrypointVLD {
			configs, err := sess.Caps.DecConfigs(profile, entrypoint)
			if err != nil {
				return nil, capsError(err)
			}
			for _, c := range configs {
				data.DecConfigs = append(data.DecConfigs, models.DecConfig{SliceMode: c.SliceMode, ProcessMode: c.ProcessMode})
			}
		} else {
			configs, err := sess.Caps.EncConfigs(profile, entrypoint)
			if err != nil {
				return nil, capsError(err)
			}
			for _, c := range configs {
				data.RCModes = append(data.RCModes, c.RCMode.String())
			}
		}
		return &models.EntryResponse{Body: data}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-attribute",
		Method:      http.MethodGet,
		Path:        "/api/platforms/{platform}/attributes",
		Summary:     "Query Attribute",
		Description: "Resolve one attribute of a profile entrypoint. Inapplicable attributes are reported with status UNSUPPORTED_ATTRIBUTE, not as an error.",
		Tags:        []string{"capabilities"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 404, 500},
	}, func(_ context.Context, input *models.AttributeRequest) (*models.AttributeResponse, error) {
		sess, err := s.session(input.Platform)
		if err != nil {
			return nil, err
		}
		profile, entrypoint, err := parseEntry(input.Profile, input.Entrypoint)
		if err != nil {
			return nil, err
		}
		attrib, err := caps.ParseAttribType(input.Attribute)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error(), err)
		}

		v, err := sess.GetAttributeValue(profile, entrypoint, attrib)
		status := caps.StatusOf(err)
		switch status {
		case caps.StatusSuccess:
		case caps.StatusUnsupportedAttribute:
			v = caps.AttribNotSupported
		default:
			return nil, capsError(err)
		}
		return &models.AttributeResponse{
			Body: models.AttributeData{AttributeValue: attributeValue(attrib, v), Status: status.String()},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-avc-roi",
		Method:      http.MethodGet,
		Path:        "/api/platforms/{platform}/roi",
		Summary:     "AVC ROI Limit",
		Description: "Get the number of AVC regions of interest supported in a rate control mode",
		Tags:        []string{"capabilities"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 404, 500},
	}, func(_ context.Context, input *models.ROIRequest) (*models.ROIResponse, error) {
		sess, err := s.session(input.Platform)
		if err != nil {
			return nil, err
		}
		mode, err := caps.ParseRCMode(input.RCMode)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error(), err)
		}

		maxNum, deltaQP, err := sess.QueryAVCROIMaxNum(mode)
		if err != nil {
			return nil, capsError(err)
		}
		return &models.ROIResponse{
			Body: models.ROIData{RCMode: mode.String(), MaxNum: maxNum, IsDeltaQP: deltaQP},
		}, nil
	})
}

func (s *Server) registerCheckRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "check-encode-resolution",
		Method:      http.MethodPost,
		Path:        "/api/platforms/{platform}/check/encode",
		Summary:     "Check Encode Resolution",
		Description: "Check an encode frame size against the limits of the platform",
		Tags:        []string{"validation"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 404, 500},
	}, func(_ context.Context, input *models.EncodeCheckRequest) (*models.ResolutionResponse, error) {
		sess, err := s.session(input.Platform)
		if err != nil {
			return nil, err
		}
		profile, err := caps.ParseProfile(input.Body.Profile)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error(), err)
		}
		return resolutionResponse(sess.CheckEncodeResolution(profile, input.Body.Width, input.Body.Height))
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "check-decode-resolution",
		Method:      http.MethodPost,
		Path:        "/api/platforms/{platform}/check/decode",
		Summary:     "Check Decode Resolution",
		Description: "Check a decode frame size against the maximum of a codec mode",
		Tags:        []string{"validation"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 404, 500},
	}, func(_ context.Context, input *models.DecodeCheckRequest) (*models.ResolutionResponse, error) {
		sess, err := s.session(input.Platform)
		if err != nil {
			return nil, err
		}
		profile, err := caps.ParseProfile(input.Body.Profile)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error(), err)
		}
		mode := profile.DecodeMode()
		if input.Body.CodecMode != "" {
			if mode, err = caps.ParseCodecMode(input.Body.CodecMode); err != nil {
				return nil, huma.Error400BadRequest(err.Error(), err)
			}
		}
		return resolutionResponse(sess.CheckDecodeResolution(mode, profile, input.Body.Width, input.Body.Height))
	})
}

// resolutionResponse reports a rejected size as a result, not an HTTP error.
func resolutionResponse(err error) (*models.ResolutionResponse, error) {
	status := caps.StatusOf(err)
	switch status {
	case caps.StatusSuccess:
		return &models.ResolutionResponse{Body: models.ResolutionData{Supported: true, Status: status.String()}}, nil
	case caps.StatusResolutionNotSupported:
		return &models.ResolutionResponse{
			Body: models.ResolutionData{Supported: false, Status: status.String(), Message: err.Error()},
		}, nil
	default:
		return nil, capsError(err)
	}
}
