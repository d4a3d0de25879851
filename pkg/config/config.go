// Package config loads service settings from environment variables with
// defaults, and validates them at start-up.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all service configuration.
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Catalog CatalogConfig
	Preview PreviewConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds each handler, previews included (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// CatalogConfig controls the optional shop catalog loaded at start-up.
type CatalogConfig struct {
	// Path is a catalog source file; empty means built-ins only.
	Path string `env:"CATALOG_PATH"`

	// EvalTimeout bounds one catalog load. A load that runs past it fails
	// and its sandbox is halted at its next function call; a loop that
	// calls nothing keeps one goroutine busy until it finishes.
	EvalTimeout time.Duration `env:"CATALOG_EVAL_TIMEOUT" default:"5s"`
}

// PreviewConfig controls drilled-panel meshing.
type PreviewConfig struct {
	// MeshCells is the marching cubes resolution along the longest axis.
	MeshCells int `env:"PREVIEW_MESH_CELLS" default:"200"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
