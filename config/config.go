package config

import (
	"path/filepath"
	"time"
)

type (
	NET struct {
		// Addr is the host:port pair the listener binds to.
		Addr string
		// MaxRequestSize caps the per-connection request buffer. A request whose header block
		// doesn't fit is rejected with 400 Bad Request.
		MaxRequestSize int
		// ReadBufferSize is a size of the buffer used to peek into a connection's socket.
		ReadBufferSize int
		// WriteBufferSize is the chunk size used when streaming files into the socket.
		WriteBufferSize int
		// PollInterval controls how often the readiness wait is interrupted in order to check
		// whether it's time to stop and to sweep idle connections.
		PollInterval time.Duration
		// IdleTimeout drops connections that haven't sent anything in this period. Zero disables
		// the sweep, so a hung client stays registered forever.
		IdleTimeout time.Duration `test:"nullable"`
	}

	FS struct {
		// Root is the directory static resources are served from.
		Root string
		// UploadDir receives uploaded files, except for PNGs.
		UploadDir string
		// PNGTarget is overwritten by every uploaded PNG.
		PNGTarget string
		// TextTarget receives the body of the text form field.
		TextTarget string
		// ImageOutput receives the result of an image-processing job.
		ImageOutput string
	}

	Path struct {
		// MaxLength is the longest request path that is still served.
		MaxLength int
		// Index replaces the root path.
		Index string
		// Time is the virtual resource served with the current time instead of a file body.
		Time string
	}

	Image struct {
		// Width, Height and Channels describe the raw bitmap accepted by the image job.
		Width, Height, Channels int
		// Gamma is the exponent applied to every sample.
		Gamma float64
	}

	Form struct {
		// TextField is the name of the form field stored into FS.TextTarget.
		TextField string
		// ImageField is the name of the form field carrying an image job.
		ImageField string
	}
)

// Config holds everything the server needs to know about its surroundings: where to listen,
// how much to buffer and where the files live.
//
// Always start from Default() and modify it. Zero values are not meaningful defaults.
type Config struct {
	NET   NET
	FS    FS
	Path  Path
	Image Image
	Form  Form
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		NET: NET{
			Addr:            ":8080",
			MaxRequestSize:  60000,
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 1024,
			PollInterval:    5 * time.Second,
			IdleTimeout:     90 * time.Second,
		},
		FS: FS{
			Root:        "public",
			UploadDir:   "public/upload",
			PNGTarget:   "public/upload.png",
			TextTarget:  "public/download.txt",
			ImageOutput: "public/output.raw",
		},
		Path: Path{
			MaxLength: 100,
			Index:     "/index.html",
			Time:      "/time",
		},
		Image: Image{
			Width:    512,
			Height:   512,
			Channels: 3,
			Gamma:    2.2,
		},
		Form: Form{
			TextField:  "mytxt",
			ImageField: "img_process",
		},
	}
}

// BitmapSize returns the exact number of bytes an image job source must hold.
func (i Image) BitmapSize() int {
	return i.Width * i.Height * i.Channels
}

// Rebase moves the static root and every storage path under the new root, keeping the
// default layout.
func (f *FS) Rebase(root string) {
	f.Root = root
	f.UploadDir = filepath.Join(root, "upload")
	f.PNGTarget = filepath.Join(root, "upload.png")
	f.TextTarget = filepath.Join(root, "download.txt")
	f.ImageOutput = filepath.Join(root, "output.raw")
}
