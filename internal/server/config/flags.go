package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     HTTP bind address (e.g. ":8080")
//	-d string     database DSN (postgres://..., sqlite://path)
//	-s string     token signing secret
//	-t duration   access token validity (e.g. "24h")
//	-e string     environment ("development", "production")
//	-l string     log level
//
// Arguments are first narrowed with flagx.FilterArgs so that flags handled
// elsewhere (-c) do not make parsing fail.
func parseFlags(c *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-e", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&c.EndpointAddrHTTP, "a", c.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&c.DatabaseDSN, "d", c.DatabaseDSN, "database DSN")
	fs.StringVar(&c.SecretKey, "s", c.SecretKey, "token signing secret")
	fs.DurationVar(&c.AccessTokenValidityDuration, "t", c.AccessTokenValidityDuration, "access token validity")
	fs.StringVar(&c.Environment, "e", c.Environment, "environment")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	return nil
}
