package branch

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rohanthewiz/hostmux/consts"
	"github.com/valyala/bytebufferpool"
)

// Router resolves host, method and path to a handler through a single
// branch tree, fronted by a resolution cache.
//
// Registration keys take the form [host, method, seg0, seg1, ...], so
// one tree answers "which handler serves GET /users/7 on api.example.com"
// and wildcard hosts/methods fall out of ordinary wildcard matching.
//
// The cache memoizes parameter-free resolutions - including confirmed
// misses - under the raw "host;method;path" string. Resolutions that
// bind slugs are recomputed every time; their values depend on the
// concrete path, and the design trades that slice of coverage for a
// cache that never needs invalidation.
//
// Registration is not synchronized. All Add calls must finish before
// the first Route call; after that the tree is read-only and Route is
// safe for unbounded concurrent use. The mutex guards only the cache
// map and is never held across a tree walk.
type Router[T any] struct {
	tree Tree[T]

	mu    sync.Mutex
	cache map[string]routeOutcome[T]

	hits  atomic.Uint64
	walks atomic.Uint64
}

// routeOutcome is one memoized resolution. found false records the
// checked-and-absent case, so repeated lookups of a dead path skip
// the tree as well.
type routeOutcome[T any] struct {
	data  T
	found bool
}

// NewRouter creates an empty router.
func NewRouter[T any]() *Router[T] {
	return &Router[T]{
		cache: make(map[string]routeOutcome[T], 16),
	}
}

// Add registers a handler under host, method and the given path
// segments. An empty host means the wildcard host. Empty segments are
// dropped silently. Registering an identical host/method/segment
// combination again replaces the handler - last write wins.
func (router *Router[T]) Add(host string, method string, segments []string, handler T) {
	key := make([]string, 0, len(segments)+2)
	key = append(key, hostOrWild(host), method)

	for _, seg := range segments {
		if seg != "" {
			key = append(key, seg)
		}
	}

	router.tree.Extend(key, handler)
}

// AddPath registers a handler from a slash-delimited path pattern.
func (router *Router[T]) AddPath(host string, method string, path string, handler T) {
	router.Add(host, method, SplitSegments(path), handler)
}

// Route resolves a request to its handler.
//
//  1. The cache is consulted under the raw host;method;path key; any
//     present entry - positive or negative - returns immediately
//     without touching the tree.
//  2. On a miss, the concrete segment list [host|*, method, segs...]
//     is fetched from the tree with full backtracking.
//  3. Captured slugs come back as Params; the caller attaches them to
//     its request before invoking the handler.
//  4. Only slug-free outcomes are written back to the cache. A failed
//     fetch binds nothing, so negative outcomes always qualify.
//
// The boolean distinguishes "no route existed" from a handler zero
// value, so absence never needs a sentinel error.
func (router *Router[T]) Route(host string, method string, path string) (T, Params, bool) {
	key := cacheKey(host, method, path)

	router.mu.Lock()
	outcome, cached := router.cache[key]
	router.mu.Unlock()

	if cached {
		router.hits.Add(1)
		return outcome.data, nil, outcome.found
	}

	router.walks.Add(1)

	segs := SplitSegments(path)
	full := make([]string, 0, len(segs)+2)
	full = append(full, hostOrWild(host), method)
	full = append(full, segs...)

	data, params, found := router.tree.Lookup(full)

	if len(params) == 0 {
		router.mu.Lock()
		router.cache[key] = routeOutcome[T]{data: data, found: found}
		router.mu.Unlock()
	}

	return data, params, found
}

// Routes lists every registration in tree order. The two synthetic
// leading segments split back out into host and method; the rest
// re-join into the display path.
func (router *Router[T]) Routes() (routes []RouteList) {
	router.tree.Routes(func(segments []string, data T) {
		if len(segments) < 2 {
			return // unreachable through Add, which always prepends host and method
		}

		routes = append(routes, RouteList{
			Host:       segments[0],
			Method:     segments[1],
			Path:       "/" + strings.Join(segments[2:], "/"),
			HandlerRef: fmt.Sprintf("%v", data),
		})
	})

	return routes
}

// Map binds all handlers to a new one provided by the callback.
// Registration phase only, like Add.
func (router *Router[T]) Map(transform func(T) T) {
	router.tree.Map(transform)
}

// Stats is a point-in-time snapshot of the resolution counters.
type Stats struct {
	CacheHits    uint64
	TreeWalks    uint64
	CacheEntries int
}

// Stats reports how many resolutions were served from the cache, how
// many walked the tree, and how many entries are resident.
func (router *Router[T]) Stats() Stats {
	router.mu.Lock()
	entries := len(router.cache)
	router.mu.Unlock()

	return Stats{
		CacheHits:    router.hits.Load(),
		TreeWalks:    router.walks.Load(),
		CacheEntries: entries,
	}
}

// cacheKey joins the raw request identity. The path is neither
// decoded nor split here, so distinct encodings of one path stay
// distinct cache entries.
func cacheKey(host string, method string, path string) string {
	bb := bytebufferpool.Get()

	bb.WriteString(host)
	bb.WriteByte(consts.RuneSemicolon)
	bb.WriteString(method)
	bb.WriteByte(consts.RuneSemicolon)
	bb.WriteString(path)

	key := bb.String()
	bytebufferpool.Put(bb)

	return key
}

// hostOrWild maps the absent host onto the wildcard segment.
func hostOrWild(host string) string {
	if host == "" {
		return consts.Wildcard
	}
	return host
}
