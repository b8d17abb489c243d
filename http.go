package hostmux

import (
	"net"

	"github.com/rohanthewiz/hostmux/consts"
)

// isValidRequestMethod returns true if the given string is a valid HTTP request method.
func isValidRequestMethod(method string) bool {
	switch method {
	case consts.MethodGet, consts.MethodHead, consts.MethodPost, consts.MethodPut,
		consts.MethodDelete, consts.MethodConnect, consts.MethodOptions, consts.MethodTrace, consts.MethodPatch:
		return true
	default:
		return false
	}
}

// isRegistrableMethod returns true for any method a route may be
// registered under. This is the valid request methods plus the
// wildcard, which matches every method at its path.
func isRegistrableMethod(method string) bool {
	return method == consts.MethodWild || isValidRequestMethod(method)
}

// hostOnly strips any port from a host:port string. Bracketed IPv6
// hosts lose their brackets along with the port.
func hostOnly(hostport string) string {
	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		return hostport
	}

	return host
}
