package mime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByPath(t *testing.T) {
	for path, want := range map[string]MIME{
		"/index.html":        HTML,
		"/index.htm":         HTML,
		"/style.css":         CSS,
		"/data.csv":          CSV,
		"/favicon.ico":       ICO,
		"/app.js":            JAVASCRIPT,
		"/photo.jpeg":        JPEG,
		"/photo.jpg":         JPEG,
		"/upload.png":        PNG,
		"/doc.pdf":           PDF,
		"/logo.svg":          SVG,
		"/notes.txt":         Plain,
		"/a.json":            JSON,
		"/anim.gif":          GIF,
		"/archive.tar":       OctetStream,
		"/no-extension":      OctetStream,
		"/dir.with.dots/bin": OctetStream,
		"/UPPER.PNG":         OctetStream,
	} {
		require.Equal(t, want, ByPath(path), path)
	}
}
