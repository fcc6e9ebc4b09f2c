package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/xraph/binspire/server"
)

// Config keys. Each can be set by flag, by BINSPIRE_<KEY> in the
// environment or a .env file, or by binspire.yaml.
const (
	keyConfig         = "config"
	keyEnvFile        = "env_file"
	keyLogFormat      = "log_format"
	keyLogLevel       = "log_level"
	keyDatabaseURL    = "database_url"
	keyTransport      = "transport"
	keyAddr           = "addr"
	keyPort           = "port"
	keyMCPPath        = "mcp_path"
	keyMigrate        = "migrate"
	keyREST           = "rest"
	keyMetrics        = "metrics"
	keyEagerLoadUsers = "eager_load_users"
	keyUserCacheTTL   = "user_cache_ttl"
	keyUserCacheSize  = "user_cache_size"
)

// legacyEnv lists unprefixed variables honoured for compatibility.
var legacyEnv = map[string]string{
	keyTransport:   "TRANSPORT",
	keyPort:        "PORT",
	keyDatabaseURL: "DATABASE_URL",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("BINSPIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "BINSPIRE_"+strings.ToUpper(key), env); err != nil {
			panic(err)
		}
	}
	return v
}

func mustBindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if flag == nil {
		panic(fmt.Sprintf("flag for key %s not found", key))
	}
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// loadEnvFile exports the variables of a .env file that are not already set
// in the environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return fmt.Errorf("read env file %q: %w", path, err)
	}
	for _, key := range env.AllKeys() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, env.GetString(key)); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}

// loadConfigFile reads the --config file, or binspire.yaml from the working
// directory when present.
func loadConfigFile(v *viper.Viper) error {
	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %q: %w", path, err)
		}
		return nil
	}
	v.SetConfigName("binspire")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

// settings is the resolved configuration of the serve command.
type settings struct {
	DatabaseURL    string
	Server         server.Config
	Migrate        bool
	Metrics        bool
	EagerLoadUsers bool
	UserCacheTTL   time.Duration
	UserCacheSize  int
}

func settingsFromViper(v *viper.Viper) (settings, error) {
	s := settings{
		DatabaseURL:    strings.TrimSpace(v.GetString(keyDatabaseURL)),
		Migrate:        v.GetBool(keyMigrate),
		Metrics:        v.GetBool(keyMetrics),
		EagerLoadUsers: v.GetBool(keyEagerLoadUsers),
		UserCacheTTL:   v.GetDuration(keyUserCacheTTL),
		UserCacheSize:  v.GetInt(keyUserCacheSize),
	}

	addr := strings.TrimSpace(v.GetString(keyAddr))
	if addr == "" {
		port := v.GetInt(keyPort)
		if port <= 0 || port > 65535 {
			return settings{}, fmt.Errorf("invalid port %q", v.GetString(keyPort))
		}
		addr = fmt.Sprintf(":%d", port)
	}
	s.Server = server.Config{
		Transport:   server.TransportFromEnv(v.GetString(keyTransport)),
		Addr:        addr,
		Path:        strings.TrimSpace(v.GetString(keyMCPPath)),
		DisableREST: !v.GetBool(keyREST),
	}
	return s, nil
}
