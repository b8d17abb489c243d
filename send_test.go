package hostmux_test

import (
	"testing"
	"time"

	"github.com/rohanthewiz/assert"
	"github.com/rohanthewiz/hostmux"
	"github.com/rohanthewiz/hostmux/consts"
)

func TestContentTypes(t *testing.T) {
	s := hostmux.NewServer()

	s.Get("/css", func(ctx hostmux.Context) error {
		return hostmux.CSS(ctx, "body{}")
	})

	s.Get("/csv", func(ctx hostmux.Context) error {
		return hostmux.CSV(ctx, "ID;Name\n")
	})

	s.Get("/html", func(ctx hostmux.Context) error {
		return hostmux.HTML(ctx, "<html></html>")
	})

	s.Get("/js", func(ctx hostmux.Context) error {
		return hostmux.JS(ctx, "console.log(42)")
	})

	s.Get("/json", func(ctx hostmux.Context) error {
		return hostmux.JSON(ctx, struct{ Name string }{Name: "User 1"})
	})

	s.Get("/text", func(ctx hostmux.Context) error {
		return hostmux.Text(ctx, "Hello")
	})

	s.Get("/xml", func(ctx hostmux.Context) error {
		return hostmux.XML(ctx, "<xml></xml>")
	})

	tests := []struct {
		Method      string
		URL         string
		Body        string
		Status      int
		Response    string
		ContentType string
	}{
		{Method: consts.MethodGet, URL: "/css", Status: 200, Response: "body{}", ContentType: "text/css"},
		{Method: consts.MethodGet, URL: "/csv", Status: 200, Response: "ID;Name\n", ContentType: "text/csv"},
		{Method: consts.MethodGet, URL: "/html", Status: 200, Response: "<html></html>", ContentType: "text/html"},
		{Method: consts.MethodGet, URL: "/js", Status: 200, Response: "console.log(42)", ContentType: "text/javascript"},
		{Method: consts.MethodGet, URL: "/json", Status: 200, Response: "{\"Name\":\"User 1\"}\n", ContentType: "application/json"},
		{Method: consts.MethodGet, URL: "/text", Status: 200, Response: "Hello", ContentType: "text/plain"},
		{Method: consts.MethodGet, URL: "/xml", Status: 200, Response: "<xml></xml>", ContentType: "text/xml"},
	}

	for _, test := range tests {
		t.Run(test.URL, func(t *testing.T) {
			response := s.Request(test.Method, "http://example.com"+test.URL, nil, nil)
			assert.Equal(t, response.Status(), test.Status)
			assert.Equal(t, response.Header("Content-Type"), test.ContentType)
			assert.Equal(t, string(response.Body()), test.Response)
		})
	}
}

// TestFileHeaders tests that File() sets appropriate headers based on file extension
func TestFileHeaders(t *testing.T) {
	s := hostmux.NewServer()

	s.Get("/image", func(ctx hostmux.Context) error {
		return hostmux.File(ctx, "photo.png", []byte("fake-png-data"))
	})

	s.Get("/document", func(ctx hostmux.Context) error {
		return hostmux.File(ctx, "report.pdf", []byte("fake-pdf-data"))
	})

	s.Get("/archive", func(ctx hostmux.Context) error {
		return hostmux.File(ctx, "archive.zip", []byte("fake-zip-data"))
	})

	s.Get("/text", func(ctx hostmux.Context) error {
		return hostmux.File(ctx, "readme.txt", []byte("fake-text-data"))
	})

	s.Get("/unknown", func(ctx hostmux.Context) error {
		return hostmux.File(ctx, "data.unknown", []byte("fake-data"))
	})

	s.Get("/svg", func(ctx hostmux.Context) error {
		return hostmux.File(ctx, "image.svg", []byte("<svg></svg>"))
	})

	tests := []struct {
		name                 string
		url                  string
		expectedContentType  string
		shouldHaveDownload   bool // Should have Content-Disposition header
		expectedResponseBody string
	}{
		{
			name:                 "PNG Image - viewable, no download headers, no charset",
			url:                  "/image",
			expectedContentType:  "image/png",
			shouldHaveDownload:   false,
			expectedResponseBody: "fake-png-data",
		},
		{
			name:                 "PDF Document - has MIME but no forced download",
			url:                  "/document",
			expectedContentType:  "application/pdf",
			shouldHaveDownload:   false,
			expectedResponseBody: "fake-pdf-data",
		},
		{
			name:                 "ZIP Archive - downloadable",
			url:                  "/archive",
			expectedContentType:  "application/zip",
			shouldHaveDownload:   true,
			expectedResponseBody: "fake-zip-data",
		},
		{
			name:                 "Text File - viewable, with charset",
			url:                  "/text",
			expectedContentType:  "text/plain; charset=utf-8",
			shouldHaveDownload:   false,
			expectedResponseBody: "fake-text-data",
		},
		{
			name:                 "SVG - viewable, with charset (XML-based)",
			url:                  "/svg",
			expectedContentType:  "image/svg+xml; charset=utf-8",
			shouldHaveDownload:   false,
			expectedResponseBody: "<svg></svg>",
		},
		{
			name:                 "Unknown Extension - defaults to octet-stream with download",
			url:                  "/unknown",
			expectedContentType:  "application/octet-stream",
			shouldHaveDownload:   true,
			expectedResponseBody: "fake-data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := s.Request(consts.MethodGet, "http://example.com"+tt.url, nil, nil)

			assert.Equal(t, response.Status(), 200)
			assert.Equal(t, response.Header("Content-Type"), tt.expectedContentType)
			assert.Equal(t, string(response.Body()), tt.expectedResponseBody)

			// Date header is always set (RFC 7231 requirement)
			assert.NotEqual(t, response.Header("Date"), "")

			contentDisposition := response.Header("Content-Disposition")
			if tt.shouldHaveDownload {
				assert.NotEqual(t, contentDisposition, "")
				assert.Contains(t, contentDisposition, "attachment")
				assert.Equal(t, response.Header("Cache-Control"), "must-revalidate")
			} else {
				assert.Equal(t, contentDisposition, "")
			}
		})
	}
}

func TestFileWithModTime(t *testing.T) {
	s := hostmux.NewServer()

	modTime := time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC)

	s.Get("/stamped", func(ctx hostmux.Context) error {
		return hostmux.FileWithModTime(ctx, "notes.txt", []byte("notes"), modTime)
	})

	s.Get("/unstamped", func(ctx hostmux.Context) error {
		return hostmux.File(ctx, "notes.txt", []byte("notes"))
	})

	response := s.Request(consts.MethodGet, "/stamped", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, response.Header("Last-Modified"), modTime.Format(time.RFC1123))

	response = s.Request(consts.MethodGet, "/unstamped", nil, nil)
	assert.Equal(t, response.Status(), 200)
	assert.Equal(t, response.Header("Last-Modified"), "")
}
