package main

import (
	"fmt"

	"github.com/rohanthewiz/hostmux/consts"
	"github.com/rohanthewiz/hostmux/core/branch"
)

func main() {
	r := branch.NewRouter[string]()

	// Add overlapping slug routes in the order that exercises backtracking
	fmt.Println("Adding route 1: /users/:year/:title")
	r.AddPath(consts.Wildcard, consts.MethodGet, "/users/:year/:title", "Handler 1: year/title")

	fmt.Println("Adding route 2: /users/:id/posts/:postId")
	r.AddPath(consts.Wildcard, consts.MethodGet, "/users/:id/posts/:postId", "Handler 2: id/posts/postId")

	fmt.Println("Adding route 3: /users/admin/posts/:postId on admin.example.com")
	r.AddPath("admin.example.com", consts.MethodGet, "/users/admin/posts/:postId", "Handler 3: admin posts")

	fmt.Println("Adding route 4: /health")
	r.AddPath(consts.Wildcard, consts.MethodGet, "/health", "Handler 4: health")

	fmt.Println("\nRegistered routes:")
	for _, rt := range r.Routes() {
		fmt.Printf("  %s\n", rt)
	}

	lookups := []struct {
		host string
		path string
	}{
		{"example.com", "/users/123/posts/456"},
		{"example.com", "/users/2024/hello-world"},
		{"admin.example.com", "/users/admin/posts/9"},
		{"admin.example.com", "/users/guest/posts/9"},
		{"example.com", "/health"},
		{"example.com", "/health"}, // parameter-free, second lookup comes from the cache
	}

	for _, l := range lookups {
		fmt.Printf("\nLooking up: %s %s\n", l.host, l.path)

		data, params, found := r.Route(l.host, consts.MethodGet, l.path)
		if !found {
			fmt.Println("  no route")
			continue
		}

		fmt.Printf("  Handler: %s\n", data)
		for name, values := range params {
			fmt.Printf("  param %s = %v\n", name, values)
		}
	}

	stats := r.Stats()
	fmt.Printf("\nStats: walks=%d cacheHits=%d cacheEntries=%d\n",
		stats.TreeWalks, stats.CacheHits, stats.CacheEntries)
}
