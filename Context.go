package hostmux

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rohanthewiz/hostmux/consts"
)

// Context is the interface for a request and its response.
type Context interface {
	Bytes([]byte) error
	Clean()
	Delete(key string)
	Error(...any) error
	Get(key string) any
	Has(key string) bool
	MatchedRoutePath() string
	Next() error
	Redirect(int, string) error
	Request() Request
	Response() Response
	Set(key string, value any)
	Status(int) Context
	UserAgent() string
	WriteHTML(string) error
	WriteJSON(any) error
	WriteString(string) error
	WriteText(string) error
}

// rootContext unwraps group middleware wrappers down to the server's
// own context. It returns nil for foreign Context implementations.
func rootContext(c Context) *context {
	for {
		switch v := c.(type) {
		case *context:
			return v
		case *contextWrapper:
			c = v.Context
		default:
			return nil
		}
	}
}

// context contains the request and response data.
type context struct {
	request
	response
	server       *Server
	data         map[string]any
	handlerCount uint8

	// resolution bookkeeping for metrics
	routed     bool
	resolveDur time.Duration
}

// reset returns the context to its default state for pooling.
func (ctx *context) reset() {
	ctx.request.reset()
	ctx.response.reset()
	ctx.Clean()
	ctx.handlerCount = 0
	ctx.routed = false
	ctx.resolveDur = 0
}

// Bytes adds the raw byte slice to the response body.
func (ctx *context) Bytes(body []byte) error {
	ctx.response.body = append(ctx.response.body, body...)
	return nil
}

// Clean removes all request-scoped data from the context.
func (ctx *context) Clean() {
	clear(ctx.data)
}

// Delete removes the keyed value from the request-scoped data.
func (ctx *context) Delete(key string) {
	delete(ctx.data, key)
}

// Error provides a convenient way to wrap multiple errors.
func (ctx *context) Error(messages ...any) error {
	var combined []error

	for _, msg := range messages {
		switch err := msg.(type) {
		case error:
			combined = append(combined, err)
		case string:
			combined = append(combined, errors.New(err))
		}
	}

	return errors.Join(combined...)
}

// Get returns the keyed request-scoped value, or nil if not present.
func (ctx *context) Get(key string) any {
	return ctx.data[key]
}

// Has reports whether the key is present in the request-scoped data.
func (ctx *context) Has(key string) bool {
	_, ok := ctx.data[key]
	return ok
}

// MatchedRoutePath returns the registered pattern the request resolved to,
// e.g. `/users/:id`. It returns an empty string unless the server was
// created with SaveMatchedRoutePath set.
func (ctx *context) MatchedRoutePath() string {
	if path, ok := ctx.Get(MatchedRoutePathKey).(string); ok {
		return path
	}

	return ""
}

// Next executes the next handler in the middleware chain.
func (ctx *context) Next() error {
	ctx.handlerCount++
	return ctx.server.handlers[ctx.handlerCount](ctx)
}

// Redirect redirects the client to a different location
// with the specified status code.
func (ctx *context) Redirect(status int, location string) error {
	ctx.response.SetStatus(status)
	ctx.response.SetHeader(consts.HeaderLocation, location)
	return nil
}

// Request returns the HTTP request.
func (ctx *context) Request() Request {
	return &ctx.request
}

// Response returns the HTTP response.
func (ctx *context) Response() Response {
	return &ctx.response
}

// Set stores a request-scoped value under the given key.
// The data survives for the life of the request only.
func (ctx *context) Set(key string, value any) {
	if ctx.data == nil {
		ctx.data = make(map[string]any, 8)
	}

	ctx.data[key] = value
}

// Status sets the HTTP status of the response
// and returns the context for method chaining.
func (ctx *context) Status(status int) Context {
	ctx.response.SetStatus(status)
	return ctx
}

// UserAgent returns the User-Agent header of the request.
func (ctx *context) UserAgent() string {
	return ctx.request.Header(consts.HeaderUserAgent)
}

// WriteHTML adds the body to the response with the content type set to `text/html`.
func (ctx *context) WriteHTML(body string) error {
	ctx.response.SetHeader(consts.HeaderContentType, consts.MIMEHTML)
	return ctx.WriteString(body)
}

// WriteJSON encodes the object as JSON into the response
// with the content type set to `application/json`.
func (ctx *context) WriteJSON(object any) error {
	ctx.response.SetHeader(consts.HeaderContentType, consts.MIMEJSON)
	return json.NewEncoder(&ctx.response).Encode(object)
}

// WriteString adds the given string to the response body.
func (ctx *context) WriteString(body string) error {
	ctx.response.body = append(ctx.response.body, body...)
	return nil
}

// WriteText adds the body to the response with the content type set to `text/plain`.
func (ctx *context) WriteText(body string) error {
	ctx.response.SetHeader(consts.HeaderContentType, consts.MIMETextPlain)
	return ctx.WriteString(body)
}
