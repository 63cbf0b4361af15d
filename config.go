package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"httpsnare/utils"
)

// Config is the full set of server options, immutable after startup. Fields
// can come from an optional TOML file; command-line flags override it.
type Config struct {
	Verbose       bool   `toml:"verbose"`
	Quiet         bool   `toml:"quiet"`
	Port          int    `toml:"port"`
	Bind          string `toml:"bind"`
	CertFile      string `toml:"cert"`
	KeyFile       string `toml:"key"`
	AdhocTLS      bool   `toml:"ssl"`
	NonGetMessage string `toml:"message"`
	ServeDir      string `toml:"directory"`
	NoServe       bool   `toml:"no_serve"`
	OutputDir     string `toml:"output"`
	IgnoreParam   string `toml:"ignore_param"`
	Accessible    bool   `toml:"accessible"`
	NoColor       bool   `toml:"no_color"`
	ProxyHops     int    `toml:"proxy_hops"`
	CORS          bool   `toml:"cors"`
}

func defaultConfig() Config {
	return Config{
		Verbose:       true,
		Bind:          utils.Wildcard,
		NonGetMessage: "ok",
		ServeDir:      ".",
		IgnoreParam:   "ignore",
	}
}

// tlsConfigured reports whether any TLS mode is requested; it decides the
// default port and the displayed protocol.
func (c Config) tlsConfigured() bool {
	return c.AdhocTLS || c.CertFile != "" || c.KeyFile != ""
}

// parseConfig loads the optional -config TOML file over the defaults, then
// binds flags on top so the command line always wins.
func parseConfig(args []string) (Config, error) {
	cfg := defaultConfig()

	if path := configPathFromArgs(args); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
	}

	fs := flag.NewFlagSet("httpsnare", flag.ContinueOnError)
	fs.String("config", "", "TOML config file (flags override it)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "print full request detail")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "suppress the startup info panel")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "listen port (default 80, 443 with TLS)")
	fs.StringVar(&cfg.Bind, "bind", cfg.Bind, "bind address: interface name, IPv4 address or 0.0.0.0")
	fs.StringVar(&cfg.CertFile, "cert", cfg.CertFile, "TLS certificate file")
	fs.StringVar(&cfg.KeyFile, "key", cfg.KeyFile, "TLS key file")
	fs.BoolVar(&cfg.AdhocTLS, "ssl", cfg.AdhocTLS, "serve TLS with an ad-hoc self-signed certificate")
	fs.StringVar(&cfg.NonGetMessage, "message", cfg.NonGetMessage, "response body for requests not served from disk")
	fs.StringVar(&cfg.ServeDir, "d", cfg.ServeDir, "directory to serve on GET/HEAD")
	fs.BoolVar(&cfg.NoServe, "no-serve", cfg.NoServe, "disable file serving, capture only")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "directory for on-disk request capture (empty disables)")
	fs.StringVar(&cfg.IgnoreParam, "ignore-param", cfg.IgnoreParam, "query parameter that suppresses display and capture")
	fs.BoolVar(&cfg.Accessible, "accessible", cfg.Accessible, "plain sequential output, no colors or rules")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.IntVar(&cfg.ProxyHops, "proxy-hops", cfg.ProxyHops, "trust the Nth-from-last X-Forwarded-For entry as the client")
	fs.BoolVar(&cfg.CORS, "cors", cfg.CORS, "add permissive CORS headers to every response")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	return cfg, cfg.normalize()
}

// configPathFromArgs pre-scans for -config so the file loads before the
// remaining flags are bound over it.
func configPathFromArgs(args []string) string {
	for i, a := range args {
		name, value, hasValue := strings.Cut(a, "=")
		if name != "-config" && name != "--config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func (c *Config) normalize() error {
	if c.Accessible {
		c.NoColor = true
	}
	if c.NoServe {
		c.ServeDir = ""
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		return errors.New("-cert and -key must be given together")
	}
	if c.Port == 0 {
		if c.tlsConfigured() {
			c.Port = 443
		} else {
			c.Port = 80
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.IgnoreParam == "" {
		return errors.New("ignore parameter name must not be empty")
	}
	return nil
}
