package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smazurov/mediacaps/internal/api/models"
	"github.com/smazurov/mediacaps/internal/caps"
	"github.com/smazurov/mediacaps/internal/events"
	"github.com/smazurov/mediacaps/internal/metrics"
	"github.com/smazurov/mediacaps/internal/report"
)

func newTestServer(t *testing.T, opts *Options) *Server {
	t.Helper()
	if opts == nil {
		opts = &Options{}
	}
	reg := caps.NewRegistry(nil)
	if err := caps.RegisterBuiltins(reg); err != nil {
		t.Fatal(err)
	}
	opts.Registry = reg
	s := NewServer(opts)
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(t, nil)

	if rec := do(t, s, http.MethodGet, "/api/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
	rec := do(t, s, http.MethodGet, "/api/version", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("version status = %d", rec.Code)
	}
	v := decode[models.VersionData](t, rec)
	if v.GoVersion == "" {
		t.Error("version misses the Go version")
	}
	if len(v.Generations) == 0 {
		t.Error("version lists no generations")
	}
}

func TestListPlatforms(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/platforms", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	data := decode[models.PlatformsData](t, rec)
	if data.Count != 4 {
		t.Fatalf("count = %d, want 4", data.Count)
	}
	if data.Platforms[2].Name != "cannonlake" || data.Platforms[2].Generation != "gen10" {
		t.Errorf("unexpected platform %+v", data.Platforms[2])
	}
}

func TestListProfiles(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/platforms/icelake/profiles", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	data := decode[models.ProfilesData](t, rec)

	found := false
	for _, p := range data.Profiles {
		if p.Profile == "HEVCMain" {
			found = strings.Contains(strings.Join(p.Entrypoints, ","), "EncSliceLP")
		}
	}
	if !found {
		t.Errorf("HEVCMain low power encode missing from %+v", data.Profiles)
	}

	if rec := do(t, s, http.MethodGet, "/api/platforms/pentium/profiles", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown platform status = %d", rec.Code)
	}
}

func TestGetEntry(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/platforms/cannonlake/profiles/H264Main/EncSlice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	data := decode[models.EntryData](t, rec)
	if data.ConfigCount != len(data.RCModes) || data.RCModes[0] != "CQP" {
		t.Errorf("configs = %d, rc modes = %v", data.ConfigCount, data.RCModes)
	}

	rec = do(t, s, http.MethodGet, "/api/platforms/cannonlake/profiles/H264High/VLD", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if data := decode[models.EntryData](t, rec); len(data.DecConfigs) == 0 {
		t.Error("decode entry has no decode configs")
	}

	if rec := do(t, s, http.MethodGet, "/api/platforms/skylake/profiles/HEVCMain/EncSliceLP", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unregistered entry status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/platforms/skylake/profiles/Bogus/VLD", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad profile status = %d", rec.Code)
	}
}

func TestQueryAttribute(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name       string
		query      string
		wantCode   int
		wantStatus string
		wantValue  uint32
	}{
		{"hevc max refs", "profile=HEVCMain&entrypoint=EncSlice&attribute=EncMaxRefFrames", http.StatusOK, "SUCCESS", 0x40004},
		{"lp max refs not applicable", "profile=HEVCMain&entrypoint=EncSliceLP&attribute=EncMaxRefFrames", http.StatusOK, "UNSUPPORTED_ATTRIBUTE", caps.AttribNotSupported},
		{"decode roi not applicable", "profile=H264Main&entrypoint=VLD&attribute=EncROI", http.StatusOK, "UNSUPPORTED_ATTRIBUTE", caps.AttribNotSupported},
		{"encode dec processing not applicable", "profile=H264Main&entrypoint=EncSlice&attribute=DecProcessing", http.StatusOK, "UNSUPPORTED_ATTRIBUTE", caps.AttribNotSupported},
		{"unknown attribute", "profile=HEVCMain&entrypoint=EncSlice&attribute=Nope", http.StatusBadRequest, "", 0},
		{"unregistered profile", "profile=VP8Version0_3&entrypoint=EncSlice&attribute=RTFormat", http.StatusNotFound, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/api/platforms/cannonlake/attributes?"+tt.query, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			data := decode[models.AttributeData](t, rec)
			if data.Status != tt.wantStatus || data.Value != tt.wantValue {
				t.Errorf("got %s %#x, want %s %#x", data.Status, data.Value, tt.wantStatus, tt.wantValue)
			}
		})
	}
}

func TestCheckResolution(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name          string
		path          string
		body          string
		wantCode      int
		wantSupported bool
	}{
		{"encode aligned", "check/encode", `{"profile":"H264Main","width":1920,"height":1088}`, http.StatusOK, true},
		{"encode unaligned", "check/encode", `{"profile":"H264Main","width":1919,"height":1088}`, http.StatusOK, false},
		{"encode bad profile", "check/encode", `{"profile":"H265","width":1920,"height":1088}`, http.StatusBadRequest, false},
		{"decode hevc 8k", "check/decode", `{"profile":"HEVCMain","width":8192,"height":4320}`, http.StatusOK, true},
		{"decode mode from profile", "check/decode", `{"profile":"MPEG2Main","width":4096,"height":2160}`, http.StatusOK, false},
		{"decode mpeg2 fits without mode", "check/decode", `{"profile":"MPEG2Main","width":1920,"height":1080}`, http.StatusOK, true},
		{"decode mpeg2 too large", "check/decode", `{"codec_mode":"mpeg2","profile":"MPEG2Main","width":4096,"height":2160}`, http.StatusOK, false},
		{"decode bad mode", "check/decode", `{"codec_mode":"h266","profile":"HEVCMain","width":64,"height":64}`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/platforms/cannonlake/"+tt.path, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			data := decode[models.ResolutionData](t, rec)
			if data.Supported != tt.wantSupported {
				t.Errorf("supported = %v, want %v (%s)", data.Supported, tt.wantSupported, data.Message)
			}
			if !data.Supported && data.Status != "RESOLUTION_NOT_SUPPORTED" {
				t.Errorf("status = %s", data.Status)
			}
		})
	}
}

func TestAVCROI(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/platforms/cannonlake/roi?rc_mode=CBR", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if data := decode[models.ROIData](t, rec); data.MaxNum != 8 || !data.IsDeltaQP {
		t.Errorf("unexpected ROI %+v", data)
	}

	if rec := do(t, s, http.MethodGet, "/api/platforms/cannonlake/roi?rc_mode=FAST", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad rc mode status = %d", rec.Code)
	}
}

func TestReportAndDiff(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/platforms/kabylake/report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if snap := decode[report.CapsSnapshot](t, rec); snap.Generation != "gen9" || len(snap.Entries) == 0 {
		t.Errorf("unexpected snapshot %s with %d entries", snap.Generation, len(snap.Entries))
	}

	rec = do(t, s, http.MethodGet, "/api/diff?from=skylake&to=icelake", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if d := decode[report.DiffReport](t, rec); d.From != "skylake" || len(d.Changes) == 0 {
		t.Errorf("unexpected diff from %s with %d changes", d.From, len(d.Changes))
	}
}

func TestLogLevels(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPut, "/api/logging/caps", `{"level":"debug"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if data := decode[models.LoggingData](t, rec); data.Modules["caps"] != "debug" {
		t.Errorf("modules = %v", data.Modules)
	}

	if rec := do(t, s, http.MethodPut, "/api/logging/caps", `{"level":"loud"}`); rec.Code/100 != 4 {
		t.Errorf("invalid level status = %d", rec.Code)
	}
}

func TestBasicAuth(t *testing.T) {
	s := newTestServer(t, &Options{AuthUsername: "admin", AuthPassword: "secret"})

	if rec := do(t, s, http.MethodGet, "/api/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health without auth status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/platforms", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("platforms without auth status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/platforms", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:secret")))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("platforms with auth status = %d", rec.Code)
	}

	wrong := base64.StdEncoding.EncodeToString([]byte("admin:nope"))
	if rec := do(t, s, http.MethodGet, "/api/platforms?auth="+wrong, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong query credentials status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	bus := events.New()
	collector := metrics.New()
	defer collector.Attach(bus)()

	s := newTestServer(t, &Options{EventBus: bus, PrometheusHandler: collector.Handler()})
	collector.SessionOpened(events.SessionOpenedEvent{Platform: "skylake", Generation: "gen9"})

	rec := do(t, s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "mediacaps_session_opened_total") {
		t.Error("metrics endpoint misses session counter")
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodOptions, "/api/platforms", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing allow origin header")
	}
}
