package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/NCATS-Gamma/hashkache/internal/hashid"
)

// DefaultConnection is the connection used when a request does not name one
const DefaultConnection = "main"

type Config struct {
	Server      ServerConfig                `mapstructure:"server"`
	Default     string                      `mapstructure:"default"`
	Connections map[string]ConnectionConfig `mapstructure:"connections"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Debug           bool          `mapstructure:"debug"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ConnectionConfig configures one named codec
type ConnectionConfig struct {
	Salt     string `mapstructure:"salt"`
	Length   int    `mapstructure:"length"`
	Alphabet string `mapstructure:"alphabet"`
}

// Load reads configuration from the optional file at path and the
// environment. Environment variables win over the file.
//
// Connection names are case-insensitive and always lower case once loaded.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.cors_origins", []string{"http://localhost:8080"})
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("default", DefaultConnection)
	v.SetDefault("connections.main.length", 10)
	v.SetDefault("connections.main.alphabet", hashid.DefaultAlphabet)

	bindings := map[string][]string{
		"server.addr":             {"HASHKACHE_ADDR"},
		"server.debug":            {"HASHKACHE_DEBUG"},
		"server.cors_origins":     {"HASHKACHE_CORS_ORIGINS"},
		"server.shutdown_timeout": {"HASHKACHE_SHUTDOWN_TIMEOUT"},
		"default":                 {"HASHKACHE_CONNECTION"},
		// APP_KEY is the fallback when no dedicated salt is set
		"connections.main.salt": {"HASHIDS_SALT", "APP_KEY"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// viper lower-cases the connection keys
	cfg.Default = strings.ToLower(cfg.Default)
	return &cfg, nil
}

// Codecs builds a codec for every configured connection. Any connection
// with a missing salt or a bad alphabet fails the whole load.
func (cfg *Config) Codecs() (map[string]*hashid.Codec, error) {
	if _, ok := cfg.Connections[strings.ToLower(cfg.Default)]; !ok {
		return nil, fmt.Errorf("default connection %q is not configured", cfg.Default)
	}

	codecs := make(map[string]*hashid.Codec, len(cfg.Connections))
	for name, conn := range cfg.Connections {
		codec, err := hashid.New(hashid.Config{
			Salt:      conn.Salt,
			MinLength: conn.Length,
			Alphabet:  conn.Alphabet,
		})
		if err != nil {
			return nil, fmt.Errorf("connection %q: %w", name, err)
		}
		codecs[name] = codec
	}
	return codecs, nil
}
