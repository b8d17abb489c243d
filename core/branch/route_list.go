package branch

// RouteList represents a registered route for debugging and inspection
// purposes. Router implementations expose their route tables through
// it in a human-readable format.
//
// Fields:
//   - Host: the registered host, "*" for the wildcard host
//   - Method: HTTP method, "*" for the wildcard method
//   - Path: the path pattern (e.g. "/users/:id")
//   - HandlerRef: string representation of the handler (for debugging)
//
// This is primarily used for:
//   - Route table visualization
//   - Debugging route conflicts
//   - Testing route registration
type RouteList struct {
	Host       string
	Method     string
	Path       string
	HandlerRef string
}

// String renders the entry as "<host> <method> <path>".
func (rl RouteList) String() string {
	return rl.Host + " " + rl.Method + " " + rl.Path
}
