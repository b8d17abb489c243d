// Package config loads server and route declarations from YAML and
// applies them to a hostmux server.
package config

import (
	"strings"

	"github.com/rohanthewiz/serr"
)

// Config is the root of a server configuration file.
type Config struct {
	Server ServerConfig  `yaml:"server"`
	Routes []RouteConfig `yaml:"routes,omitempty"`
}

// ServerConfig holds the listener and runtime settings.
type ServerConfig struct {
	Address              string `yaml:"address,omitempty"`
	Verbose              bool   `yaml:"verbose,omitempty"`
	LogLevel             string `yaml:"logLevel,omitempty"`
	LogFormat            string `yaml:"logFormat,omitempty"`
	Metrics              bool   `yaml:"metrics,omitempty"`
	SaveMatchedRoutePath bool   `yaml:"saveMatchedRoutePath,omitempty"`
}

// RouteConfig declares one route. The handler is either a name resolved
// against the handlers the program registers, or a static response.
type RouteConfig struct {
	Host     string          `yaml:"host,omitempty"`
	Method   string          `yaml:"method,omitempty"`
	Path     string          `yaml:"path"`
	Handler  string          `yaml:"handler,omitempty"`
	Response *StaticResponse `yaml:"response,omitempty"`
}

// StaticResponse is a fixed response served for a route.
type StaticResponse struct {
	Status      int    `yaml:"status,omitempty"`
	ContentType string `yaml:"contentType,omitempty"`
	Body        string `yaml:"body,omitempty"`
}

// Default returns a configuration with the standard defaults applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:  ":8080",
			LogLevel: "info",
		},
	}
}

// registrableMethods are the methods a route may declare.
var registrableMethods = map[string]bool{
	"GET": true, "HEAD": true, "POST": true, "PUT": true, "DELETE": true,
	"CONNECT": true, "OPTIONS": true, "TRACE": true, "PATCH": true, "*": true,
}

// Validate checks the configuration for declarations the server would
// reject at registration time.
func (c *Config) Validate() error {
	for i := range c.Routes {
		r := &c.Routes[i]

		if r.Path == "" || !strings.HasPrefix(r.Path, "/") {
			return serr.New("route path must begin with a slash", "path", r.Path)
		}

		if r.Method != "" && !registrableMethods[r.Method] {
			return serr.New("unknown route method", "method", r.Method, "path", r.Path)
		}

		if r.Handler == "" && r.Response == nil {
			return serr.New("route needs a handler name or a static response", "path", r.Path)
		}

		if r.Handler != "" && r.Response != nil {
			return serr.New("route cannot have both a handler name and a static response", "path", r.Path)
		}
	}

	return nil
}

// applyDefaults fills the zero values a file may leave out.
func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}

	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	for i := range c.Routes {
		if c.Routes[i].Host == "" {
			c.Routes[i].Host = "*"
		}

		if c.Routes[i].Method == "" {
			c.Routes[i].Method = "GET"
		}
	}
}
