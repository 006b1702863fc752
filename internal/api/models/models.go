package models

// HealthData represents health check response data.
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Health status"`
	Message string `json:"message" example:"API is healthy" doc:"Health message"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Body HealthData
}

// VersionData represents version information.
type VersionData struct {
	Version     string   `json:"version" example:"1.0.0" doc:"Application version"`
	GitCommit   string   `json:"git_commit" example:"abc123" doc:"Git commit hash"`
	BuildDate   string   `json:"build_date" example:"2025-01-27T10:30:00Z" doc:"Build timestamp"`
	GoVersion   string   `json:"go_version" example:"go1.24.0" doc:"Go version"`
	Platform    string   `json:"platform" example:"linux/amd64" doc:"Build platform"`
	Generations []string `json:"generations" example:"[\"gen9\"]" doc:"Hardware generations compiled in"`
}

// VersionResponse represents the version endpoint response.
type VersionResponse struct {
	Body VersionData
}

// LoggingData lists the configured module log levels.
type LoggingData struct {
	Modules map[string]string `json:"modules" doc:"Log level by module"`
}

// LoggingResponse is the response of the logging endpoints.
type LoggingResponse struct {
	Body LoggingData
}

// LogLevelRequest changes the level of one module.
type LogLevelRequest struct {
	Module string `path:"module" example:"caps" doc:"Logger module"`
	Body   struct {
		Level string `json:"level" enum:"debug,info,warn,error" example:"debug" doc:"New log level"`
	}
}
