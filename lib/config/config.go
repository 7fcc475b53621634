// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted by Load.
const EnvPath = "GARNIX_INSIGHTS_CONFIG"

// Config is the full configuration file.
type Config struct {
	API    APIConfig    `yaml:"api" json:"api"`
	Auth   AuthConfig   `yaml:"auth" json:"auth"`
	Server ServerConfig `yaml:"server" json:"server"`
	MCP    MCPConfig    `yaml:"mcp" json:"mcp"`
}

// APIConfig configures the Garnix REST client.
type APIConfig struct {
	// BaseURL is the API root. Must be HTTPS.
	// Default: https://garnix.io/api
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Timeout bounds each HTTP request, as a Go duration string.
	// Default: 30s
	Timeout string `yaml:"timeout" json:"timeout"`
}

// AuthConfig says where the Garnix JWT comes from when neither
// --token nor GARNIX_JWT_TOKEN is given.
type AuthConfig struct {
	// Token is the JWT itself. Prefer TokenFile.
	Token string `yaml:"token" json:"token"`

	// TokenFile holds the JWT. A ".age" suffix marks an age-sealed
	// file, decrypted with IdentityFile.
	TokenFile string `yaml:"token_file" json:"token_file"`

	// IdentityFile is the age identity used for sealed token files.
	IdentityFile string `yaml:"identity_file" json:"identity_file"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// Default: 127.0.0.1
	Bind string `yaml:"bind" json:"bind"`

	// Default: 8080
	Port int `yaml:"port" json:"port"`
}

// MCPConfig configures the MCP stdio server.
type MCPConfig struct {
	// ProtocolVersion is a version selector: an exact version string
	// or one of latest, stable, legacy.
	// Default: latest
	ProtocolVersion string `yaml:"protocol_version" json:"protocol_version"`

	// ToolTimeout bounds each upstream call made by a tool.
	// Default: 30s
	ToolTimeout string `yaml:"tool_timeout" json:"tool_timeout"`
}

// Default returns the configuration used when no file is given, and the
// base that file values are layered onto.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://garnix.io/api",
			Timeout: "30s",
		},
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 8080,
		},
		MCP: MCPConfig{
			ProtocolVersion: "latest",
			ToolTimeout:     "30s",
		},
	}
}

// Load loads the file named by GARNIX_INSIGHTS_CONFIG, or returns
// Default when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvPath)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads and validates the file at path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%s: unsupported config format (want .yaml, .yml, .json, or .jsonc)", path)
	}
	return nil
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Auth.TokenFile = expandVars(c.Auth.TokenFile, vars)
	c.Auth.IdentityFile = expandVars(c.Auth.IdentityFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default}, preferring vars over
// the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("api.base_url must be an https URL, got %q", c.API.BaseURL))
	}
	if _, err := parsePositiveDuration(c.API.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("api.timeout: %w", err))
	}
	if _, err := parsePositiveDuration(c.MCP.ToolTimeout); err != nil {
		errs = append(errs, fmt.Errorf("mcp.tool_timeout: %w", err))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.Bind == "" {
		errs = append(errs, fmt.Errorf("server.bind is required"))
	}
	if c.Auth.Token != "" && c.Auth.TokenFile != "" {
		errs = append(errs, fmt.Errorf("auth.token and auth.token_file are mutually exclusive"))
	}
	if c.Auth.IsSealed() && c.Auth.IdentityFile == "" {
		errs = append(errs, fmt.Errorf("auth.identity_file is required for sealed token file %s", c.Auth.TokenFile))
	}

	return errors.Join(errs...)
}

// IsSealed reports whether TokenFile is an age file.
func (a AuthConfig) IsSealed() bool {
	return strings.HasSuffix(a.TokenFile, ".age")
}

// RequestTimeout returns the parsed api.timeout.
func (a APIConfig) RequestTimeout() time.Duration {
	duration, _ := parsePositiveDuration(a.Timeout)
	return duration
}

// ToolTimeoutDuration returns the parsed mcp.tool_timeout.
func (m MCPConfig) ToolTimeoutDuration() time.Duration {
	duration, _ := parsePositiveDuration(m.ToolTimeout)
	return duration
}

// Address returns the server's host:port listen address.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Bind, fmt.Sprint(s.Port))
}

func parsePositiveDuration(value string) (time.Duration, error) {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if duration <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", value)
	}
	return duration, nil
}
