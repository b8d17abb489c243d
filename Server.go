package hostmux

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/savsgio/gotils/bytes"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rohanthewiz/hostmux/consts"
	"github.com/rohanthewiz/hostmux/core/branch"
)

// Handler responds to a request within its context.
type Handler func(ctx Context) error

// MatchedRoutePathKey is the context data key under which the matched
// route pattern is stored when ServerOptions.SaveMatchedRoutePath is set.
// The key is randomized at startup so it cannot collide with user data.
var MatchedRoutePathKey = fmt.Sprintf("__matchedRoutePath::%s__", bytes.Rand(make([]byte, 15)))

// ServerOptions configures a server at construction.
type ServerOptions struct {
	// Address is the listen address, e.g. ":8080". Run's argument, when
	// given, takes precedence.
	Address string

	// Verbose enables startup chatter and, when no Logger is supplied,
	// a console logger at debug level.
	Verbose bool

	// Logger receives access and lifecycle logs. Leave nil for a no-op
	// logger (or a console logger under Verbose).
	Logger *zap.Logger

	// EnableMetrics creates a Prometheus registry for the server and
	// serves it at GET /metrics on every host.
	EnableMetrics bool

	// SaveMatchedRoutePath stores each request's matched route pattern
	// in the context data, retrievable via Context.MatchedRoutePath.
	SaveMatchedRoutePath bool

	// Ready, if set, receives one signal once the listener is accepting
	// connections. The send never blocks, so an unbuffered channel with
	// no receiver simply misses the signal.
	Ready chan struct{}
}

// Server is the HTTP server. It resolves each request by host, method
// and path through its router, and runs the matched handler at the end
// of the middleware chain.
type Server struct {
	opts         ServerOptions
	handlers     []Handler
	contextPool  sync.Pool
	router       *branch.Router[Handler]
	errorHandler func(Context, error)
	logger       *zap.Logger
	metrics      *Metrics
	tracer       trace.Tracer
	httpServer   *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(options ...ServerOptions) *Server {
	opts := ServerOptions{}
	if len(options) > 0 {
		opts = options[0]
	}

	lg := opts.Logger
	if lg == nil {
		if opts.Verbose {
			lg, _ = NewLogger("debug", LogFormatConsole)
		} else {
			lg = zap.NewNop()
		}
	}

	s := &Server{
		opts:   opts,
		router: branch.NewRouter[Handler](),
		logger: lg,
		tracer: otel.Tracer("github.com/rohanthewiz/hostmux"),
	}

	// The resolution handler anchors the chain; Use inserts middleware
	// ahead of it.
	s.handlers = []Handler{s.resolveHandler}

	s.errorHandler = func(ctx Context, err error) {
		s.logger.Error("handler error",
			zap.String("host", ctx.Request().Host()),
			zap.String("method", ctx.Request().Method()),
			zap.String("path", ctx.Request().Path()),
			zap.Error(err),
		)
	}

	if opts.EnableMetrics {
		s.metrics = NewMetrics("", s.router)
		s.Get("/metrics", WrapHTTPHandler(s.metrics.Handler()))
	}

	s.contextPool.New = func() any { return s.newContext() }

	return s
}

// Get registers your function to be called when the given GET path has been requested.
func (s *Server) Get(path string, handler Handler) {
	s.AddMethod(consts.Wildcard, consts.MethodGet, path, handler)
}

// Post registers your function to be called when the given POST path has been requested.
func (s *Server) Post(path string, handler Handler) {
	s.AddMethod(consts.Wildcard, consts.MethodPost, path, handler)
}

// Put registers your function to be called when the given PUT path has been requested.
func (s *Server) Put(path string, handler Handler) {
	s.AddMethod(consts.Wildcard, consts.MethodPut, path, handler)
}

// Patch registers your function to be called when the given PATCH path has been requested.
func (s *Server) Patch(path string, handler Handler) {
	s.AddMethod(consts.Wildcard, consts.MethodPatch, path, handler)
}

// Delete registers your function to be called when the given DELETE path has been requested.
func (s *Server) Delete(path string, handler Handler) {
	s.AddMethod(consts.Wildcard, consts.MethodDelete, path, handler)
}

// Head registers your function to be called when the given HEAD path has been requested.
func (s *Server) Head(path string, handler Handler) {
	s.AddMethod(consts.Wildcard, consts.MethodHead, path, handler)
}

// Options registers your function to be called when the given OPTIONS path has been requested.
func (s *Server) Options(path string, handler Handler) {
	s.AddMethod(consts.Wildcard, consts.MethodOptions, path, handler)
}

// Any registers your function for every method at the given path.
func (s *Server) Any(path string, handler Handler) {
	s.AddMethod(consts.Wildcard, consts.MethodWild, path, handler)
}

// AddMethod registers a handler under the given host, method and path.
// Host "*" (or empty) serves any host; method "*" serves any method.
// Registration is not synchronized - finish adding routes before the
// server starts serving.
func (s *Server) AddMethod(host string, method string, path string, handler Handler) {
	if !isRegistrableMethod(method) {
		panic(serr.New("cannot register route", "method", method, "path", path))
	}

	if s.opts.SaveMatchedRoutePath {
		pattern := path
		inner := handler

		handler = func(ctx Context) error {
			ctx.Set(MatchedRoutePathKey, pattern)
			return inner(ctx)
		}
	}

	s.router.AddPath(host, method, path, handler)
}

// Group returns a route group with the given path prefix, serving any host.
func (s *Server) Group(prefix string, handlers ...Handler) *Group {
	return &Group{host: consts.Wildcard, prefix: prefix, server: s, handlers: handlers}
}

// Host returns a route group bound to the given host. Routes registered
// through it resolve only for requests naming that exact host.
func (s *Server) Host(host string, handlers ...Handler) *Group {
	return &Group{host: host, server: s, handlers: handlers}
}

// Use adds handlers to your handlers chain.
func (s *Server) Use(handlers ...Handler) {
	last := s.handlers[len(s.handlers)-1]
	// Re-slice to exclude last and append the incoming handlers
	s.handlers = append(s.handlers[:len(s.handlers)-1], handlers...)
	s.handlers = append(s.handlers, last) // add back the last
}

// SetErrorHandler replaces the handler invoked when the chain returns an
// error. The default logs the error with the server's logger.
func (s *Server) SetErrorHandler(fn func(Context, error)) {
	s.errorHandler = fn
}

// Routes lists every registered route sorted by host, method and path.
func (s *Server) Routes() []branch.RouteList {
	routes := s.router.Routes()

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Host != routes[j].Host {
			return routes[i].Host < routes[j].Host
		}
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	return routes
}

// Stats returns the router's resolution counters.
func (s *Server) Stats() branch.Stats {
	return s.router.Stats()
}

// Metrics returns the server metrics, or nil unless EnableMetrics was set.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Logger returns the server's logger.
func (s *Server) Logger() *zap.Logger {
	return s.logger
}

// Router returns the underlying resolver, e.g. for direct resolution checks.
func (s *Server) Router() *branch.Router[Handler] {
	return s.router
}

// Request performs a synthetic request and returns the response.
// The request runs through the full middleware and resolution path in
// memory, so it is very useful inside tests where you don't want to
// spin up a real web server. A bare path like "/users/7" targets the
// host "example.com"; pass an absolute URL to exercise host routing.
func (s *Server) Request(method string, target string, headers []Header, body io.Reader) Response {
	req := httptest.NewRequest(method, target, body)
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	res := &response{}
	res.copyFrom(rec.Code, rec.Header(), rec.Body.Bytes())

	return res
}

// WrapHTTPHandler adapts a net/http handler into a route handler.
// The wrapped handler's output is captured into the context's buffered
// response, so middleware below it can still inspect or amend it.
func WrapHTTPHandler(h http.Handler) Handler {
	return func(c Context) error {
		ctx := rootContext(c)
		if ctx == nil {
			return serr.New("cannot unwrap context for net/http handler")
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, ctx.request.raw)

		ctx.response.copyFrom(rec.Code, rec.Header(), rec.Body.Bytes())
		return nil
	}
}

// Run starts the server. An address given here overrides
// ServerOptions.Address; with neither set it listens on ":8080".
// Run blocks until the server fails or is interrupted; on SIGINT or
// SIGTERM it shuts down gracefully.
func (s *Server) Run(address ...string) error {
	addr := s.opts.Address
	if len(address) > 0 && address[0] != "" {
		addr = address[0]
	}
	if addr == "" {
		addr = ":8080"
	}

	listener, err := net.Listen(consts.ProtocolTCP, addr)
	if err != nil {
		return serr.Wrap(err, "address", addr)
	}

	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.opts.Verbose {
		fmt.Printf("Server is running at %s\n", addr)
	}
	s.logger.Info("server listening", zap.String("address", addr))

	if s.opts.Ready != nil {
		select {
		case s.opts.Ready <- struct{}{}:
		default:
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return serr.Wrap(err, "address", addr)
	case <-interruptChan():
		return s.gracefulStop()
	}
}

// ServeHTTP implements http.Handler. Each request runs through the
// middleware chain on a pooled context, then the buffered response is
// flushed to the wire.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := s.contextPool.Get().(*context)

	ctx.request.bind(r)
	s.handleRequest(ctx, w)

	ctx.reset()
	s.contextPool.Put(ctx)
}

// handleRequest runs the handler chain for the bound request and
// flushes the result.
func (s *Server) handleRequest(ctx *context, w http.ResponseWriter) {
	err := s.handlers[0](ctx)
	if err != nil {
		s.errorHandler(ctx, err)

		if ctx.response.status < consts.StatusBadRequest {
			ctx.response.SetStatus(consts.StatusInternalServerError)
		}

		if ctx.response.status == consts.StatusInternalServerError && len(ctx.response.body) == 0 {
			_ = ctx.WriteString("Internal Server Error")
		}
	}

	if s.metrics != nil {
		s.metrics.RecordRequest(ctx.request.method, ctx.response.Status(), ctx.routed, ctx.resolveDur)
	}

	ctx.response.writeTo(w)
}

// resolveHandler anchors the middleware chain: it resolves the request
// through the router and runs the matched handler, or answers 404.
func (s *Server) resolveHandler(c Context) error {
	ctx := c.(*context)
	req := &ctx.request

	_, span := s.tracer.Start(req.raw.Context(), "hostmux.resolve",
		trace.WithAttributes(
			attribute.String("http.host", req.host),
			attribute.String("http.method", req.method),
			attribute.String("url.path", req.path),
		))

	start := time.Now()
	hdlr, params, found := s.router.Route(req.host, req.method, req.path)
	ctx.resolveDur = time.Since(start)
	ctx.routed = found

	span.SetAttributes(
		attribute.Bool("route.found", found),
		attribute.Int("route.params", len(params)),
	)
	span.End()

	if !found {
		ctx.response.SetStatus(consts.StatusNotFound)
		return nil
	}

	if len(params) > 0 {
		req.params = params
	}

	return hdlr(ctx)
}

// newContext allocates a new context with the default state.
func (s *Server) newContext() *context {
	return &context{
		server: s,
		response: response{
			body:    make([]byte, 0, 1024),
			headers: make([]Header, 0, 8),
			status:  consts.StatusOK,
		},
	}
}
