package consts

const (
	MIMETextPlain   = "text/plain"
	MIMEOctetStream = "application/octet-stream"
	MIMEFormData    = "application/x-www-form-urlencoded"
	MIMEJSON        = "application/json"
	MIMEXML         = "application/xml"
	MIMEHTML        = "text/html"
	MIMECSS         = "text/css"
	MIMECSV         = "text/csv"
	MIMEJS          = "text/javascript"

	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEGIF  = "image/gif"
	MIMESVG  = "image/svg+xml"
	MIMEICO  = "image/x-icon"

	MIMEPDF = "application/pdf"
	MIMEZIP = "application/zip"
)
