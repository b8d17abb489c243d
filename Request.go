package hostmux

import (
	"io"
	"net/http"

	"github.com/rohanthewiz/hostmux/consts"
	"github.com/rohanthewiz/hostmux/core/branch"
)

// Request is the interface for an HTTP request.
type Request interface {
	Body() []byte
	Header(string) string
	Host() string
	Method() string
	Param(string) string
	ParamValues(string) []string
	Params() branch.Params
	Path() string
	Query() string
	QueryValue(string) string
	Scheme() string
}

// request represents the HTTP request used in the given context.
// The routing fields (host, method, path) are snapshotted from the
// underlying net/http request when the context is bound, so they stay
// stable even if a wrapped handler mutates the raw request.
type request struct {
	raw *http.Request

	scheme string
	host   string // hostname with any port stripped
	method string
	path   string // escaped path, exactly as resolved

	body     []byte
	bodyRead bool

	params branch.Params
}

// bind snapshots the routing fields from the given net/http request.
func (req *request) bind(r *http.Request) {
	req.raw = r

	req.scheme = consts.HTTP
	if r.TLS != nil {
		req.scheme = consts.HTTPS
	}

	req.host = hostOnly(r.Host)
	req.method = r.Method

	req.path = r.URL.EscapedPath()
	if req.path == "" {
		req.path = "/"
	}
}

// reset returns the request to its default state for reuse.
func (req *request) reset() {
	req.raw = nil
	req.scheme = ""
	req.host = ""
	req.method = ""
	req.path = ""
	req.body = req.body[:0]
	req.bodyRead = false
	req.params = nil
}

// Body returns the request body, reading it from the wire on first use.
func (req *request) Body() []byte {
	if !req.bodyRead {
		req.bodyRead = true

		if req.raw != nil && req.raw.Body != nil {
			data, err := io.ReadAll(req.raw.Body)
			if err == nil {
				req.body = append(req.body, data...)
			}
		}
	}

	return req.body
}

// Header returns the header value for the given key.
func (req *request) Header(key string) string {
	if req.raw == nil {
		return ""
	}

	return req.raw.Header.Get(key)
}

// Host returns the hostname the request was resolved against.
// Any port present on the wire has been stripped.
func (req *request) Host() string {
	return req.host
}

// Method returns the request method.
func (req *request) Method() string {
	return req.method
}

// Param retrieves the first captured value for the named slug.
func (req *request) Param(name string) string {
	return req.params.Get(name)
}

// ParamValues retrieves every captured value for the named slug,
// ordered by position in the path.
func (req *request) ParamValues(name string) []string {
	return req.params.Values(name)
}

// Params returns all captured slug values for the matched route.
// It is nil when the route had no slugs.
func (req *request) Params() branch.Params {
	return req.params
}

// Path returns the resolved path.
func (req *request) Path() string {
	return req.path
}

// Query returns the raw query string.
func (req *request) Query() string {
	if req.raw == nil {
		return ""
	}

	return req.raw.URL.RawQuery
}

// QueryValue returns the first query value for the given key.
func (req *request) QueryValue(key string) string {
	if req.raw == nil {
		return ""
	}

	return req.raw.URL.Query().Get(key)
}

// Scheme returns either `http`, `https` or an empty string.
func (req *request) Scheme() string {
	return req.scheme
}
