package hostmux_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rohanthewiz/assert"
	"github.com/rohanthewiz/hostmux"
	"github.com/rohanthewiz/hostmux/consts"
)

func TestServerHello(t *testing.T) {
	s := hostmux.NewServer()

	s.Get("/", func(ctx hostmux.Context) error {
		return ctx.WriteString("Welcome home")
	})

	response := s.Request(consts.MethodGet, "/", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, string(response.Body()), "Welcome home")
}

func TestServerNotFound(t *testing.T) {
	s := hostmux.NewServer()

	s.Get("/here", func(ctx hostmux.Context) error {
		return ctx.WriteString("here")
	})

	response := s.Request(consts.MethodGet, "/missing", nil, nil)
	assert.Equal(t, response.Status(), 404)
	assert.Equal(t, string(response.Body()), "")

	// Same path, unregistered method
	response = s.Request(consts.MethodPost, "/here", nil, nil)
	assert.Equal(t, response.Status(), 404)
}

func TestServerHostRouting(t *testing.T) {
	s := hostmux.NewServer()

	api := s.Host("api.example.com")
	api.Get("/users/:id", func(ctx hostmux.Context) error {
		return ctx.WriteString("api user " + ctx.Request().Param("id"))
	})

	s.Get("/users/:id", func(ctx hostmux.Context) error {
		return ctx.WriteString("any user " + ctx.Request().Param("id"))
	})

	// The exact host wins over the wildcard registration
	response := s.Request(consts.MethodGet, "http://api.example.com/users/7", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, string(response.Body()), "api user 7")

	// Unknown hosts fall through to the wildcard
	response = s.Request(consts.MethodGet, "http://other.example.com/users/7", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, string(response.Body()), "any user 7")

	// Ports are stripped before resolution
	response = s.Request(consts.MethodGet, "http://api.example.com:9000/users/7", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, string(response.Body()), "api user 7")
}

func TestServerAnyMethod(t *testing.T) {
	s := hostmux.NewServer()

	s.Any("/status", func(ctx hostmux.Context) error {
		return ctx.WriteString("ok")
	})

	for _, method := range []string{consts.MethodGet, consts.MethodPost, consts.MethodDelete} {
		response := s.Request(method, "/status", nil, nil)
		assert.Equal(t, response.Status(), 200)
		assert.Equal(t, string(response.Body()), "ok")
	}
}

func TestServerMiddlewareOrder(t *testing.T) {
	s := hostmux.NewServer()

	var order []string

	s.Use(func(ctx hostmux.Context) error {
		order = append(order, "first")
		return ctx.Next()
	})

	s.Use(func(ctx hostmux.Context) error {
		order = append(order, "second")
		return ctx.Next()
	})

	s.Get("/", func(ctx hostmux.Context) error {
		order = append(order, "handler")
		return ctx.WriteString("done")
	})

	response := s.Request(consts.MethodGet, "/", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, len(order), 3)
	assert.Equal(t, order[0], "first")
	assert.Equal(t, order[1], "second")
	assert.Equal(t, order[2], "handler")
}

func TestServerErrorHandler(t *testing.T) {
	s := hostmux.NewServer()

	var captured error
	s.SetErrorHandler(func(ctx hostmux.Context, err error) {
		captured = err
	})

	s.Get("/fail", func(ctx hostmux.Context) error {
		return errors.New("boom")
	})

	response := s.Request(consts.MethodGet, "/fail", nil, nil)
	assert.Equal(t, response.Status(), 500)
	assert.True(t, captured != nil)
	assert.Contains(t, captured.Error(), "boom")
}

func TestServerErrorKeepsStatus(t *testing.T) {
	s := hostmux.NewServer()

	s.Get("/teapot", func(ctx hostmux.Context) error {
		return ctx.Status(418).Error("short and stout")
	})

	// An explicit 4xx/5xx from the handler is not overridden
	response := s.Request(consts.MethodGet, "/teapot", nil, nil)
	assert.Equal(t, response.Status(), 418)
}

func TestServerMatchedRoutePath(t *testing.T) {
	s := hostmux.NewServer(hostmux.ServerOptions{SaveMatchedRoutePath: true})

	s.Get("/users/:id/posts/:postId", func(ctx hostmux.Context) error {
		return ctx.WriteString(ctx.MatchedRoutePath())
	})

	response := s.Request(consts.MethodGet, "/users/7/posts/42", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, string(response.Body()), "/users/:id/posts/:postId")
}

func TestServerMatchedRoutePathDisabled(t *testing.T) {
	s := hostmux.NewServer()

	s.Get("/users/:id", func(ctx hostmux.Context) error {
		return ctx.WriteString(ctx.MatchedRoutePath())
	})

	response := s.Request(consts.MethodGet, "/users/7", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, string(response.Body()), "")
}

func TestServerStatsCaching(t *testing.T) {
	s := hostmux.NewServer()

	s.Get("/ping", func(ctx hostmux.Context) error {
		return ctx.WriteString("pong")
	})

	s.Request(consts.MethodGet, "/ping", nil, nil)
	s.Request(consts.MethodGet, "/ping", nil, nil)

	stats := s.Stats()
	assert.Equal(t, stats.TreeWalks, uint64(1))
	assert.Equal(t, stats.CacheHits, uint64(1))
	assert.Equal(t, stats.CacheEntries, 1)
}

func TestServerMetricsEndpoint(t *testing.T) {
	s := hostmux.NewServer(hostmux.ServerOptions{EnableMetrics: true})

	s.Get("/ping", func(ctx hostmux.Context) error {
		return ctx.WriteText("pong")
	})

	response := s.Request(consts.MethodGet, "/ping", nil, nil)
	assert.Equal(t, response.Status(), 200)

	response = s.Request(consts.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, response.Status(), 200)

	body := string(response.Body())
	assert.Contains(t, body, "hostmux_requests_total")
	assert.Contains(t, body, "hostmux_resolve_tree_walks_total")
	assert.Contains(t, body, "hostmux_resolve_cache_entries")
}

func TestServerRoutesPage(t *testing.T) {
	s := hostmux.NewServer()

	s.Get("/widgets/:id", func(ctx hostmux.Context) error {
		return ctx.WriteString("widget")
	})
	s.Get("/routes", s.RoutesHandler())

	response := s.Request(consts.MethodGet, "/routes", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, response.Header("Content-Type"), "text/html")

	body := string(response.Body())
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, "/widgets/:id")
	assert.Contains(t, body, "/routes")
}

func TestServerRoutesSorted(t *testing.T) {
	s := hostmux.NewServer()

	noop := func(ctx hostmux.Context) error { return nil }

	s.Host("b.example.com").Get("/x", noop)
	s.Host("a.example.com").Get("/x", noop)
	s.Get("/x", noop)

	routes := s.Routes()
	assert.Equal(t, len(routes), 3)
	assert.Equal(t, routes[0].Host, "*")
	assert.Equal(t, routes[1].Host, "a.example.com")
	assert.Equal(t, routes[2].Host, "b.example.com")
}

func TestServerPanic(t *testing.T) {
	s := hostmux.NewServer()

	s.Get("/panic", func(ctx hostmux.Context) error {
		panic("Something unbelievable happened")
	})

	defer func() {
		r := recover()

		if r == nil {
			t.Error("Didn't panic")
		}
	}()

	s.Request(consts.MethodGet, "/panic", nil, nil)
}

func TestServerRun(t *testing.T) {
	ready := make(chan struct{}, 1)
	s := hostmux.NewServer(hostmux.ServerOptions{Address: "127.0.0.1:18080", Ready: ready})

	s.Get("/", func(ctx hostmux.Context) error {
		return ctx.WriteString("Welcome home")
	})

	runErr := make(chan error, 1)
	go func() {
		runErr <- s.Run()
	}()

	<-ready

	response, err := http.Get("http://127.0.0.1:18080/")
	assert.Nil(t, err)

	body, err := io.ReadAll(response.Body)
	assert.Nil(t, err)
	_ = response.Body.Close()
	assert.Equal(t, string(body), "Welcome home")

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Nil(t, s.Shutdown(shutCtx))
	assert.Nil(t, <-runErr)
}

func TestShutdownBeforeRun(t *testing.T) {
	// Shutdown on a server that never ran is a no-op
	s := hostmux.NewServer()
	assert.Nil(t, s.Shutdown(context.Background()))
}

func TestServerUnavailablePort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:18081")
	assert.Nil(t, err)
	defer listener.Close()

	s := hostmux.NewServer()
	err = s.Run("127.0.0.1:18081")
	assert.True(t, err != nil)
}
