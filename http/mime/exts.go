package mime

import "path"

var Extension = map[string]MIME{
	".css":  CSS,
	".csv":  CSV,
	".gif":  GIF,
	".htm":  HTML,
	".html": HTML,
	".ico":  ICO,
	".jpeg": JPEG,
	".jpg":  JPEG,
	".js":   JAVASCRIPT,
	".json": JSON,
	".png":  PNG,
	".pdf":  PDF,
	".svg":  SVG,
	".txt":  Plain,
}

// ByPath returns the MIME type for the extension of the path, or OctetStream if the
// extension is unknown. Extensions are case-sensitive.
func ByPath(p string) MIME {
	if m, found := Extension[path.Ext(p)]; found {
		return m
	}

	return OctetStream
}
