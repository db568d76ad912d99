package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
	"github.com/dmitrijs2005/gophnotes/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for JSON and YAML files. Durations accept
// strings such as "24h" or integer nanoseconds.
type fileConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	PasswordHashCost            int            `json:"password_hash_cost" yaml:"password_hash_cost"`
	Environment                 string         `json:"environment" yaml:"environment"`
	LogLevel                    string         `json:"log_level" yaml:"log_level"`
	LogFormat                   string         `json:"log_format" yaml:"log_format"`
	DBMaxOpenConns              int            `json:"db_max_open_conns" yaml:"db_max_open_conns"`
	DBMaxIdleConns              int            `json:"db_max_idle_conns" yaml:"db_max_idle_conns"`
	DBConnMaxLifetime           timex.Duration `json:"db_conn_max_lifetime" yaml:"db_conn_max_lifetime"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// parseFile overlays the file given with -c/-config. Keys missing from the
// file keep their current values. ${VAR} references are expanded from the
// environment before decoding.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	data = []byte(expandEnvVars(string(data)))

	fc := toFileConfig(cfg)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the variable's value, or with an empty
// string when it is unset.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

func toFileConfig(c *Config) fileConfig {
	return fileConfig{
		EndpointAddrHTTP:            c.EndpointAddrHTTP,
		DatabaseDSN:                 c.DatabaseDSN,
		SecretKey:                   c.SecretKey,
		AccessTokenValidityDuration: timex.Duration{Duration: c.AccessTokenValidityDuration},
		PasswordHashCost:            c.PasswordHashCost,
		Environment:                 c.Environment,
		LogLevel:                    c.LogLevel,
		LogFormat:                   c.LogFormat,
		DBMaxOpenConns:              c.DBMaxOpenConns,
		DBMaxIdleConns:              c.DBMaxIdleConns,
		DBConnMaxLifetime:           timex.Duration{Duration: c.DBConnMaxLifetime},
		ShutdownTimeout:             timex.Duration{Duration: c.ShutdownTimeout},
	}
}

func (fc fileConfig) apply(c *Config) {
	c.EndpointAddrHTTP = fc.EndpointAddrHTTP
	c.DatabaseDSN = fc.DatabaseDSN
	c.SecretKey = fc.SecretKey
	c.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	c.PasswordHashCost = fc.PasswordHashCost
	c.Environment = fc.Environment
	c.LogLevel = fc.LogLevel
	c.LogFormat = fc.LogFormat
	c.DBMaxOpenConns = fc.DBMaxOpenConns
	c.DBMaxIdleConns = fc.DBMaxIdleConns
	c.DBConnMaxLifetime = fc.DBConnMaxLifetime.Duration
	c.ShutdownTimeout = fc.ShutdownTimeout.Duration
}
