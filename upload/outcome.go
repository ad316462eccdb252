package upload

import "github.com/indigo-web/tinyhttpd/http/status"

// Outcome is the result of processing a POST payload.
type Outcome uint8

const (
	// NotMultipart means the payload carries nothing to store. The request is served like
	// a GET.
	NotMultipart Outcome = iota
	StoredFile
	TextField
	ImageJobAccepted
	// TooLarge means the part wasn't terminated by a boundary within the received data.
	TooLarge
	NameConflict
	NoFileSelected
	SourceMissing
	StorageFailed
)

func (o Outcome) String() string {
	switch o {
	case NotMultipart:
		return "not multipart"
	case StoredFile:
		return "stored file"
	case TextField:
		return "text field"
	case ImageJobAccepted:
		return "image job accepted"
	case TooLarge:
		return "too large"
	case NameConflict:
		return "name conflict"
	case NoFileSelected:
		return "no file selected"
	case SourceMissing:
		return "source missing"
	case StorageFailed:
		return "storage failed"
	}

	return "unknown"
}

// Success reports whether something was stored.
func (o Outcome) Success() bool {
	switch o {
	case StoredFile, TextField, ImageJobAccepted:
		return true
	}

	return false
}

// Err returns the rejection the outcome must be answered with, or nil if the request is
// served normally.
func (o Outcome) Err() error {
	switch o {
	case TooLarge:
		return status.ErrFileTooLarge
	case NameConflict:
		return status.ErrFileExists
	case NoFileSelected:
		return status.ErrNoFileSelected
	case SourceMissing:
		return status.ErrSourceMissing
	case StorageFailed:
		return status.ErrStorageFailed
	}

	return nil
}
