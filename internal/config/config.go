// Package config loads and defaults the service's YAML configuration,
// following the same loadYAML-then-applyDefaults shape the rest of
// the fleet uses for its gateway and judge services.
package config

import (
	"fmt"
	"os"

	"judgebox/pkg/utils/logger"

	"gopkg.in/yaml.v3"
)

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	ReadTimeoutMs  int    `yaml:"readTimeoutMs"`
	WriteTimeoutMs int    `yaml:"writeTimeoutMs"`
}

// RedisConfig configures the session store lookup used by the session gate.
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// ToolchainConfig names the external compilers/interpreters the
// LanguageProfiles shell out to. None of these are bundled; the
// operator points the service at whatever toolchain is installed.
type ToolchainConfig struct {
	CXXCompiler    string `yaml:"cxxCompiler"`
	CXXFlags       string `yaml:"cxxFlags"`
	CxxTestGen     string `yaml:"cxxTestGen"`
	JavaC          string `yaml:"javac"`
	Java           string `yaml:"java"`
	JUnitClasspath string `yaml:"junitClasspath"`
	Python3        string `yaml:"python3"`
	Pytest         string `yaml:"pytest"`
	TempRoot       string `yaml:"tempRoot"`

	// DisabledLanguages administratively blocks a language regardless
	// of toolchain availability; Resolve reports it as
	// langprofile.ErrLanguageDisabled rather than running it.
	DisabledLanguages []string `yaml:"disabledLanguages"`
}

// ExecutorConfig holds the ProcessDriver's default wall-clock timeout.
type ExecutorConfig struct {
	RunTimeoutMs int `yaml:"runTimeoutMs"`
}

// Config is the top-level configuration document.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logger    logger.Config   `yaml:"logger"`
	Redis     RedisConfig     `yaml:"redis"`
	Toolchain ToolchainConfig `yaml:"toolchain"`
	Executor  ExecutorConfig  `yaml:"executor"`
}

// Load reads a YAML config file from path and applies defaults for
// any field left unset.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = envOr("PORT", ":3000")
		if cfg.Server.Addr != "" && cfg.Server.Addr[0] != ':' {
			cfg.Server.Addr = ":" + cfg.Server.Addr
		}
	}
	if cfg.Server.ReadTimeoutMs == 0 {
		cfg.Server.ReadTimeoutMs = 5000
	}
	if cfg.Server.WriteTimeoutMs == 0 {
		cfg.Server.WriteTimeoutMs = 10000
	}

	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "json"
	}
	if cfg.Logger.Service == "" {
		cfg.Logger.Service = "judgebox"
	}

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = envOr("REDIS_HOST", "127.0.0.1")
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = envOr("REDIS_PREFIX", "sess")
	}

	if cfg.Toolchain.CXXCompiler == "" {
		cfg.Toolchain.CXXCompiler = "g++"
	}
	if cfg.Toolchain.CxxTestGen == "" {
		cfg.Toolchain.CxxTestGen = "cxxtestgen"
	}
	if cfg.Toolchain.JavaC == "" {
		cfg.Toolchain.JavaC = "javac"
	}
	if cfg.Toolchain.Java == "" {
		cfg.Toolchain.Java = "java"
	}
	if cfg.Toolchain.Python3 == "" {
		cfg.Toolchain.Python3 = "python3"
	}
	if cfg.Toolchain.Pytest == "" {
		cfg.Toolchain.Pytest = "pytest"
	}
	if cfg.Toolchain.TempRoot == "" {
		cfg.Toolchain.TempRoot = os.TempDir()
	}

	if cfg.Executor.RunTimeoutMs == 0 {
		cfg.Executor.RunTimeoutMs = 3000
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
