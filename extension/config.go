package extension

import (
	"time"

	"github.com/xraph/binspire/cache"
)

// Config holds the Binspire extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.binspire" or "binspire" keys).
type Config struct {
	// DisableRoutes prevents HTTP route registration.
	DisableRoutes bool `json:"disable_routes" mapstructure:"disable_routes" yaml:"disable_routes"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// DisableMetrics skips the Prometheus collector plugin.
	DisableMetrics bool `json:"disable_metrics" mapstructure:"disable_metrics" yaml:"disable_metrics"`

	// EagerLoadUsers attaches the owning user to histories and issues
	// (default: true).
	EagerLoadUsers *bool `json:"eager_load_users,omitempty" mapstructure:"eager_load_users" yaml:"eager_load_users,omitempty"`

	// UserCacheTTL is how long eager-loaded users are cached. Zero disables
	// the cache.
	UserCacheTTL time.Duration `json:"user_cache_ttl" mapstructure:"user_cache_ttl" yaml:"user_cache_ttl"`

	// UserCacheSize bounds the number of cached users.
	UserCacheSize int `json:"user_cache_size" mapstructure:"user_cache_size" yaml:"user_cache_size"`

	// MCPPath is where the streamable MCP handler is served by Handler
	// (default: "/mcp").
	MCPPath string `json:"mcp_path" mapstructure:"mcp_path" yaml:"mcp_path"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserCacheTTL:  cache.DefaultTTL,
		UserCacheSize: cache.DefaultMaxSize,
		MCPPath:       "/mcp",
	}
}
