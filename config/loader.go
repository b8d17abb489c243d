package config

import (
	"os"

	"github.com/rohanthewiz/serr"
	"gopkg.in/yaml.v3"

	"github.com/rohanthewiz/hostmux"
	"github.com/rohanthewiz/hostmux/consts"
)

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serr.Wrap(err, "path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, serr.Wrap(err, "path", path)
	}

	return cfg, nil
}

// Parse unmarshals, validates and defaults a YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, serr.Wrap(err, "stage", "yaml")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

// Apply registers the configured routes on the server. Named handlers
// are resolved against the given map; routes with a static response get
// a handler built here.
func Apply(s *hostmux.Server, cfg *Config, handlers map[string]hostmux.Handler) error {
	for _, route := range cfg.Routes {
		var handler hostmux.Handler

		switch {
		case route.Handler != "":
			handler = handlers[route.Handler]
			if handler == nil {
				return serr.New("no handler registered under the configured name",
					"handler", route.Handler, "path", route.Path)
			}

		case route.Response != nil:
			handler = staticHandler(route.Response)

		default:
			return serr.New("route has no handler", "path", route.Path)
		}

		s.AddMethod(route.Host, route.Method, route.Path, handler)
	}

	return nil
}

// staticHandler builds a handler serving a fixed response.
func staticHandler(resp *StaticResponse) hostmux.Handler {
	status := resp.Status
	if status == 0 {
		status = consts.StatusOK
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = consts.MIMETextPlain
	}

	body := resp.Body

	return func(ctx hostmux.Context) error {
		ctx.Response().SetStatus(status)
		ctx.Response().SetHeader(consts.HeaderContentType, contentType)
		return ctx.WriteString(body)
	}
}
