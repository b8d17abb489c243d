package consts

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
	MethodConnect = "CONNECT"
	MethodTrace   = "TRACE"

	// MethodWild registers a handler for every method at its path.
	MethodWild = "*"
)

const (
	HTTP  = "http"
	HTTPS = "https"

	SchemeDelimiter = "://"
	Localhost       = "localhost"

	ProtocolTCP = "tcp"
)

// Routing tokens. A leading colon marks a slug segment; an asterisk
// matches any value at its position. Host and method ride in front of
// the path as synthetic segments, so the wildcard doubles as the
// "any host"/"any method" marker.
const (
	RuneColon     = ':'
	RuneFwdSlash  = '/'
	RuneSemicolon = ';'
	RuneQuestion  = '?'

	Wildcard = "*"
)

const (
	StatusOK                  = 200
	StatusNoContent           = 204
	StatusMovedPermanently    = 301
	StatusFound               = 302
	StatusSeeOther            = 303
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusInternalServerError = 500
)

const (
	HeaderContentType        = "Content-Type"
	HeaderContentLength      = "Content-Length"
	HeaderContentDisposition = "Content-Disposition"
	HeaderLocation           = "Location"
	HeaderHost               = "Host"
	HeaderRequestID          = "X-Request-ID"
	HeaderCacheControl       = "Cache-Control"
	HeaderDate               = "Date"
	HeaderLastModified       = "Last-Modified"
	HeaderUserAgent          = "User-Agent"
)
