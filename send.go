package hostmux

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohanthewiz/hostmux/consts"
)

// CSS sends the body with the content type set to `text/css`.
func CSS(ctx Context, body string) error {
	ctx.Response().SetHeader(consts.HeaderContentType, consts.MIMECSS)
	return ctx.WriteString(body)
}

// CSV sends the body with the content type set to `text/csv`.
func CSV(ctx Context, body string) error {
	ctx.Response().SetHeader(consts.HeaderContentType, consts.MIMECSV)
	return ctx.WriteString(body)
}

// HTML sends the body with the content type set to `text/html`.
func HTML(ctx Context, body string) error {
	ctx.Response().SetHeader(consts.HeaderContentType, consts.MIMEHTML)
	return ctx.WriteString(body)
}

// JS sends the body with the content type set to `text/javascript`.
func JS(ctx Context, body string) error {
	ctx.Response().SetHeader(consts.HeaderContentType, consts.MIMEJS)
	return ctx.WriteString(body)
}

// JSON encodes the object in JSON format and sends it with the content type set to `application/json`.
func JSON(ctx Context, object any) error {
	return ctx.WriteJSON(object)
}

// Text sends the body with the content type set to `text/plain`.
func Text(ctx Context, body string) error {
	ctx.Response().SetHeader(consts.HeaderContentType, consts.MIMETextPlain)
	return ctx.WriteString(body)
}

// XML sends the body with the content type set to `text/xml`.
func XML(ctx Context, body string) error {
	ctx.Response().SetHeader(consts.HeaderContentType, "text/xml")
	return ctx.WriteString(body)
}

// setFileHeaders determines the MIME type from the file extension and
// sets the headers appropriate for that file category. Text-based types
// get charset=utf-8; types the browser cannot display get download headers.
// If modTime is non-zero, Last-Modified is set for conditional requests.
func setFileHeaders(ctx Context, filename string, modTime time.Time) {
	ext := strings.ToLower(filepath.Ext(filename))

	var mimeType string
	var isDownloadable bool
	var isTextBased bool

	switch ext {
	case ".html", ".htm":
		mimeType = consts.MIMEHTML
		isTextBased = true
	case ".css":
		mimeType = consts.MIMECSS
		isTextBased = true
	case ".js":
		mimeType = consts.MIMEJS
		isTextBased = true
	case ".json":
		mimeType = consts.MIMEJSON
		isTextBased = true
	case ".xml":
		mimeType = consts.MIMEXML
		isTextBased = true
	case ".txt", ".log":
		mimeType = consts.MIMETextPlain
		isTextBased = true
	case ".csv":
		mimeType = consts.MIMECSV
		isTextBased = true

	case ".png":
		mimeType = consts.MIMEPNG
	case ".jpg", ".jpeg":
		mimeType = consts.MIMEJPEG
	case ".gif":
		mimeType = consts.MIMEGIF
	case ".svg":
		mimeType = consts.MIMESVG
		isTextBased = true // SVG is XML-based
	case ".ico":
		mimeType = consts.MIMEICO

	case ".pdf":
		mimeType = consts.MIMEPDF
	case ".zip":
		mimeType = consts.MIMEZIP
		isDownloadable = true

	default:
		mimeType = consts.MIMEOctetStream
		isDownloadable = true
	}

	if isTextBased {
		ctx.Response().SetHeader(consts.HeaderContentType, mimeType+"; charset=utf-8")
	} else {
		ctx.Response().SetHeader(consts.HeaderContentType, mimeType)
	}

	// Date is an RFC 7231 requirement for origin servers
	ctx.Response().SetHeader(consts.HeaderDate, time.Now().UTC().Format(time.RFC1123))

	if !modTime.IsZero() {
		ctx.Response().SetHeader(consts.HeaderLastModified, modTime.UTC().Format(time.RFC1123))
	}

	if isDownloadable {
		ctx.Response().SetHeader(consts.HeaderContentDisposition,
			"attachment; filename="+url.QueryEscape(filename))
		ctx.Response().SetHeader(consts.HeaderCacheControl, "must-revalidate")
	}
}

// File sends a file with headers appropriate for the file extension.
// Viewable files (images, text, etc.) get a Content-Type only; files the
// browser cannot display also get download headers.
func File(ctx Context, filename string, body []byte) error {
	setFileHeaders(ctx, filename, time.Time{})
	return ctx.Bytes(body)
}

// FileWithModTime sends a file like File and also sets Last-Modified,
// enabling browser caching via conditional requests (If-Modified-Since).
func FileWithModTime(ctx Context, filename string, body []byte, modTime time.Time) error {
	setFileHeaders(ctx, filename, modTime)
	return ctx.Bytes(body)
}
