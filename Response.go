package hostmux

import (
	"io"
	"net/http"
	"strings"

	"github.com/rohanthewiz/hostmux/consts"
)

// Response is the interface for an HTTP response.
type Response interface {
	io.Writer
	io.StringWriter
	Body() []byte
	Header(string) string
	SetHeader(key string, value string)
	SetBody([]byte)
	SetStatus(int)
	Status() int
}

// response buffers the HTTP response used in the given context.
// Handlers write into the buffer; the server flushes it to the wire
// once the handler chain returns, so middleware below a handler can
// still inspect or rewrite status, headers and body.
type response struct {
	body    []byte
	headers []Header
	status  uint16
}

// Body returns the response body.
func (res *response) Body() []byte {
	return res.body
}

// Header returns the header value for the given key.
// Keys compare case-insensitively, as header names do on the wire.
func (res *response) Header(key string) string {
	for _, header := range res.headers {
		if strings.EqualFold(header.Key, key) {
			return header.Value
		}
	}

	return ""
}

// SetHeader sets the header value for the given key.
func (res *response) SetHeader(key string, value string) {
	for i, header := range res.headers {
		if strings.EqualFold(header.Key, key) {
			res.headers[i].Value = value
			return
		}
	}

	res.headers = append(res.headers, Header{Key: key, Value: value})
}

// SetBody replaces the response body with the new contents.
func (res *response) SetBody(body []byte) {
	res.body = body
}

// SetStatus sets the HTTP status code.
func (res *response) SetStatus(status int) {
	res.status = uint16(status)
}

// Status returns the HTTP status code.
func (res *response) Status() int {
	return int(res.status)
}

// Write implements the io.Writer interface.
func (res *response) Write(body []byte) (int, error) {
	res.body = append(res.body, body...)
	return len(body), nil
}

// WriteString implements the io.StringWriter interface.
func (res *response) WriteString(body string) (int, error) {
	res.body = append(res.body, body...)
	return len(body), nil
}

// reset returns the buffer to its default state for reuse.
func (res *response) reset() {
	res.body = res.body[:0]
	res.headers = res.headers[:0]
	res.status = consts.StatusOK
}

// writeTo flushes the buffered status, headers and body to the wire.
func (res *response) writeTo(w http.ResponseWriter) {
	hdr := w.Header()
	for _, header := range res.headers {
		hdr.Set(header.Key, header.Value)
	}

	w.WriteHeader(int(res.status))
	_, _ = w.Write(res.body)
}

// copyFrom loads a recorded result into the buffer, replacing any
// previous contents. Used when a wrapped net/http handler produced
// the response.
func (res *response) copyFrom(status int, header http.Header, body []byte) {
	res.status = uint16(status)
	res.headers = res.headers[:0]

	for key, values := range header {
		for _, value := range values {
			res.headers = append(res.headers, Header{Key: key, Value: value})
		}
	}

	res.body = append(res.body[:0], body...)
}
