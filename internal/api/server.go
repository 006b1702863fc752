package api

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/smazurov/mediacaps/internal/api/models"
	"github.com/smazurov/mediacaps/internal/caps"
	"github.com/smazurov/mediacaps/internal/driver"
	"github.com/smazurov/mediacaps/internal/dump"
	"github.com/smazurov/mediacaps/internal/events"
	"github.com/smazurov/mediacaps/internal/logging"
	"github.com/smazurov/mediacaps/internal/sku"
	"github.com/smazurov/mediacaps/internal/version"
)

// Server serves capability queries over HTTP. One driver session is opened
// per platform on first use and kept until Stop.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	options    *Options
	eventBus   *events.Bus
	logger     *slog.Logger

	mu       sync.Mutex
	sessions map[sku.Platform]*driver.Session
}

// Options configures the API server.
type Options struct {
	AuthUsername      string
	AuthPassword      string
	Registry          *caps.Registry
	Overrides         sku.Overrides
	Dump              dump.Sink
	EventBus          *events.Bus
	PrometheusHandler http.Handler
}

// basicAuthMiddleware creates middleware for HTTP basic authentication.
func (s *Server) basicAuthMiddleware(username, password string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		if op != nil && len(op.Security) == 0 {
			next(ctx)
			return
		}

		credentials, err := requestCredentials(ctx)
		if err != nil {
			ctx.SetHeader("WWW-Authenticate", `Basic realm="mediacaps"`)
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, err.Error())
			return
		}

		user, pass, ok := strings.Cut(credentials, ":")
		if !ok || user != username || pass != password {
			ctx.SetHeader("WWW-Authenticate", `Basic realm="mediacaps"`)
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		next(ctx)
	}
}

// requestCredentials reads "user:pass" from the Authorization header, or
// from the auth query parameter for SSE clients that cannot set headers.
func requestCredentials(ctx huma.Context) (string, error) {
	encoded := ""
	if header := ctx.Header("Authorization"); header != "" {
		const prefix = "Basic "
		if !strings.HasPrefix(header, prefix) {
			return "", errors.New("invalid authentication type")
		}
		encoded = header[len(prefix):]
	} else {
		encoded = ctx.Query("auth")
	}
	if encoded == "" {
		return "", errors.New("authentication required")
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.New("invalid credentials format")
	}
	return string(decoded), nil
}

// NewServer creates the API server with Huma v2 on the standard library mux.
func NewServer(opts *Options) *Server {
	mux := http.NewServeMux()

	corsConfig := DefaultCORSConfig()
	AddCORSHandler(mux, corsConfig)

	config := huma.DefaultConfig("mediacaps API", version.Get().Version)
	config.Info.Description = "Media codec capability negotiation for GPU hardware generations"
	config.Servers = []*huma.Server{}
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"basicAuth": {
			Type:   "http",
			Scheme: "basic",
		},
	}

	api := humago.New(mux, config)

	if opts.Registry == nil {
		opts.Registry = caps.NewRegistry(nil)
	}
	if opts.EventBus == nil {
		opts.EventBus = events.New()
	}
	server := &Server{
		api:      api,
		mux:      mux,
		options:  opts,
		eventBus: opts.EventBus,
		logger:   logging.GetLogger("api"),
		sessions: make(map[sku.Platform]*driver.Session),
	}

	api.UseMiddleware(NewCORSMiddleware(corsConfig))
	api.UseMiddleware(NewHTTPLoggingMiddleware(logging.GetLogger("http")))
	if opts.AuthUsername != "" && opts.AuthPassword != "" {
		api.UseMiddleware(server.basicAuthMiddleware(opts.AuthUsername, opts.AuthPassword))
	}

	if opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", opts.PrometheusHandler)
	}

	server.registerRoutes()
	return server
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// GetAPI returns the Huma API instance.
func (s *Server) GetAPI() huma.API {
	return s.api
}

// Start serves on addr until Stop is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting mediacaps API server", "addr", addr)
	s.logger.Info("OpenAPI documentation available", "url", "http://"+addr+"/docs")

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}
	return s.httpServer.ListenAndServe()
}

// Stop closes the listener and every open session.
func (s *Server) Stop() error {
	s.logger.Info("Stopping API server")

	s.mu.Lock()
	for p, sess := range s.sessions {
		if err := sess.Close(); err != nil {
			s.logger.Warn("Failed to close session", "platform", p.String(), "error", err)
		}
		delete(s.sessions, p)
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

// session returns the session of a platform, opening it on first use.
func (s *Server) session(name string) (*driver.Session, error) {
	p, err := sku.ParsePlatform(name)
	if err != nil {
		return nil, huma.Error404NotFound(fmt.Sprintf("unknown platform %q", name))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[p]; ok {
		return sess, nil
	}
	sess, err := driver.Open(s.options.Registry, driver.Options{
		Platform:  p,
		Overrides: s.options.Overrides,
		Dump:      s.options.Dump,
		Bus:       s.eventBus,
	})
	if err != nil {
		if errors.Is(err, caps.ErrUnknownGeneration) {
			return nil, huma.Error404NotFound(fmt.Sprintf("no capabilities registered for %s", p), err)
		}
		return nil, huma.Error500InternalServerError("failed to open session", err)
	}
	s.sessions[p] = sess
	return sess, nil
}

// registerRoutes sets up all API endpoints.
func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Description: "Check API health status",
		Tags:        []string{"health"},
		Security:    []map[string][]string{},
	}, func(_ context.Context, _ *struct{}) (*models.HealthResponse, error) {
		return &models.HealthResponse{
			Body: models.HealthData{
				Status:  "ok",
				Message: "API is healthy",
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Description: "Get application version information",
		Tags:        []string{"system"},
		Security:    []map[string][]string{},
	}, func(_ context.Context, _ *struct{}) (*models.VersionResponse, error) {
		v := version.Get(generationNames()...)
		return &models.VersionResponse{
			Body: models.VersionData{
				Version:     v.Version,
				GitCommit:   v.GitCommit,
				BuildDate:   v.BuildDate,
				GoVersion:   v.GoVersion,
				Platform:    v.Platform,
				Generations: v.Generations,
			},
		}, nil
	})

	s.registerCapsRoutes()
	s.registerCheckRoutes()
	s.registerReportRoutes()
	s.registerLoggingRoutes()
	s.registerSSERoutes()
}

// withAuth returns security requirement for basic auth.
func generationNames() []string {
	gens := caps.Generations()
	names := make([]string, 0, len(gens))
	for _, g := range gens {
		names = append(names, g.Name)
	}
	return names
}

func withAuth() []map[string][]string {
	return []map[string][]string{
		{"basicAuth": {}},
	}
}
