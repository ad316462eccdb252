package mime

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	CSS         MIME = "text/css"
	CSV         MIME = "text/csv"
	JSON        MIME = "application/json"
	JAVASCRIPT  MIME = "application/javascript"
	PDF         MIME = "application/pdf"
	Multipart   MIME = "multipart/form-data"
	GIF         MIME = "image/gif"
	ICO         MIME = "image/x-icon"
	JPEG        MIME = "image/jpeg"
	PNG         MIME = "image/png"
	SVG         MIME = "image/svg+xml"
)
