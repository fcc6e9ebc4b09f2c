package server

import (
	"fmt"
	"strings"
	"time"
)

// Transport values.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config selects how the MCP server is exposed.
type Config struct {
	// Transport is "stdio" (default) or "http".
	Transport string `json:"transport" mapstructure:"transport" yaml:"transport"`

	// Addr is the HTTP listen address (default: ":3000").
	Addr string `json:"addr" mapstructure:"addr" yaml:"addr"`

	// Path is where the streamable HTTP handler is mounted (default: "/mcp").
	Path string `json:"path" mapstructure:"path" yaml:"path"`

	// ShutdownTimeout bounds the graceful HTTP shutdown (default: 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// DisableREST stops the REST API from being mounted under /v1.
	DisableREST bool `json:"disable_rest" mapstructure:"disable_rest" yaml:"disable_rest"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Transport:       TransportStdio,
		Addr:            ":3000",
		Path:            "/mcp",
		ShutdownTimeout: 10 * time.Second,
	}
}

func (c *Config) normalize() error {
	def := DefaultConfig()
	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	if c.Transport == "" {
		c.Transport = def.Transport
	}
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("binspire: unknown transport %q (want %q or %q)", c.Transport, TransportStdio, TransportHTTP)
	}
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.Path == "" {
		c.Path = def.Path
	}
	if !strings.HasPrefix(c.Path, "/") {
		c.Path = "/" + c.Path
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	return nil
}
