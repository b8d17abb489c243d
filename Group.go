package hostmux

import (
	"path"

	"github.com/rohanthewiz/hostmux/consts"
)

// Group represents a set of routes sharing a host, a path prefix and
// middleware. Groups can be nested; a child inherits the parent's host,
// prefix and middleware chain. Create groups with Server.Group for a
// path prefix on any host, or Server.Host to pin routes to one host.
type Group struct {
	host     string
	prefix   string
	server   *Server
	handlers []Handler
}

// Group creates a sub-group with an additional prefix and optional middleware.
// Example: apiGroup.Group("/users", authMiddleware) nests /users under /api.
func (g *Group) Group(prefix string, handlers ...Handler) *Group {
	return &Group{
		host:   g.host,
		prefix: path.Join(g.prefix, prefix),
		server: g.server,
		// Copy the parent chain so later Use calls on either group don't
		// bleed into the other through a shared backing array.
		handlers: append(append([]Handler{}, g.handlers...), handlers...),
	}
}

// Use adds middleware to the group.
// The middleware applies to routes registered after this call,
// in the order it was added.
func (g *Group) Use(handlers ...Handler) {
	g.handlers = append(g.handlers, handlers...)
}

// Get registers a GET route under the group's host and prefix
func (g *Group) Get(routePath string, handler Handler) {
	g.addRoute(consts.MethodGet, routePath, handler)
}

// Post registers a POST route under the group's host and prefix
func (g *Group) Post(routePath string, handler Handler) {
	g.addRoute(consts.MethodPost, routePath, handler)
}

// Put registers a PUT route under the group's host and prefix
func (g *Group) Put(routePath string, handler Handler) {
	g.addRoute(consts.MethodPut, routePath, handler)
}

// Patch registers a PATCH route under the group's host and prefix
func (g *Group) Patch(routePath string, handler Handler) {
	g.addRoute(consts.MethodPatch, routePath, handler)
}

// Delete registers a DELETE route under the group's host and prefix
func (g *Group) Delete(routePath string, handler Handler) {
	g.addRoute(consts.MethodDelete, routePath, handler)
}

// Head registers a HEAD route under the group's host and prefix
func (g *Group) Head(routePath string, handler Handler) {
	g.addRoute(consts.MethodHead, routePath, handler)
}

// Options registers an OPTIONS route under the group's host and prefix
func (g *Group) Options(routePath string, handler Handler) {
	g.addRoute(consts.MethodOptions, routePath, handler)
}

// Any registers the handler for every method under the group's host and prefix
func (g *Group) Any(routePath string, handler Handler) {
	g.addRoute(consts.MethodWild, routePath, handler)
}

// addRoute builds the full path from the group prefix, wraps the handler
// with the group middleware, and registers it on the server.
func (g *Group) addRoute(method, routePath string, handler Handler) {
	fullPath := path.Join("/", g.prefix, routePath)

	// Wrap in reverse order so middleware executes in the order it was added.
	finalHandler := handler

	for i := len(g.handlers) - 1; i >= 0; i-- {
		middleware := g.handlers[i]
		nextHandler := finalHandler

		finalHandler = func(ctx Context) error {
			nextCalled := false

			// The wrapper intercepts Next so the middleware hands control
			// to the next handler of this group chain rather than the
			// server-level chain.
			wrapper := &contextWrapper{
				Context: ctx,
				next: func() error {
					nextCalled = true
					return nextHandler(ctx)
				},
			}

			err := middleware(wrapper)

			// Middleware that neither errored nor called Next continues
			// the chain implicitly.
			if err == nil && !nextCalled {
				err = nextHandler(ctx)
			}

			return err
		}
	}

	g.server.AddMethod(g.host, method, fullPath, finalHandler)
}

// contextWrapper wraps a Context to intercept Next() calls.
type contextWrapper struct {
	Context
	next func() error
}

// Next executes the next handler in the group's middleware chain.
func (w *contextWrapper) Next() error {
	return w.next()
}
