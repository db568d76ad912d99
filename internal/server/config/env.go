package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables recognised by parseEnv.
const (
	EnvHTTPAddr          = "NOTES_HTTP_ADDR"
	EnvDatabaseDSN       = "NOTES_DATABASE_DSN"
	EnvJWTSecret         = "NOTES_JWT_SECRET"
	EnvTokenTTL          = "NOTES_TOKEN_TTL"
	EnvPasswordHashCost  = "NOTES_PASSWORD_HASH_COST"
	EnvEnvironment       = "NOTES_ENV"
	EnvLogLevel          = "NOTES_LOG_LEVEL"
	EnvLogFormat         = "NOTES_LOG_FORMAT"
	EnvDBMaxOpenConns    = "NOTES_DB_MAX_OPEN_CONNS"
	EnvDBMaxIdleConns    = "NOTES_DB_MAX_IDLE_CONNS"
	EnvDBConnMaxLifetime = "NOTES_DB_CONN_MAX_LIFETIME"
	EnvShutdownTimeout   = "NOTES_SHUTDOWN_TIMEOUT"
)

func parseEnv(c *Config) error {
	strs := map[string]*string{
		EnvHTTPAddr:    &c.EndpointAddrHTTP,
		EnvDatabaseDSN: &c.DatabaseDSN,
		EnvJWTSecret:   &c.SecretKey,
		EnvEnvironment: &c.Environment,
		EnvLogLevel:    &c.LogLevel,
		EnvLogFormat:   &c.LogFormat,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		EnvPasswordHashCost: &c.PasswordHashCost,
		EnvDBMaxOpenConns:   &c.DBMaxOpenConns,
		EnvDBMaxIdleConns:   &c.DBMaxIdleConns,
	}
	for name, dst := range ints {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}

	durations := map[string]*time.Duration{
		EnvTokenTTL:          &c.AccessTokenValidityDuration,
		EnvDBConnMaxLifetime: &c.DBConnMaxLifetime,
		EnvShutdownTimeout:   &c.ShutdownTimeout,
	}
	for name, dst := range durations {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = d
	}

	return nil
}
