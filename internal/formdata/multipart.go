package formdata

import (
	"iter"

	"github.com/indigo-web/tinyhttpd/internal/formdata/internal"
	"github.com/indigo-web/tinyhttpd/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// maxBoundaryLength is defined by RFC 2046, 5.1.1.
const maxBoundaryLength = 70

// Part is a single entry of a multipart/form-data body. Strings refer to the parsed data.
type Part struct {
	Name     string
	Filename string
	// HasFilename distinguishes an empty filename (no file was selected in the form) from its
	// absence (a plain field).
	HasFilename bool
	ContentType string
	Value       string
	// Complete reports whether the value is followed by a boundary delimiter. Otherwise the
	// data ended first and Value holds whatever was received.
	Complete bool
}

// Boundary extracts the boundary parameter from a multipart/form-data Content-Type value.
func Boundary(contentType string) (boundary string, ok bool) {
	value, params := strutil.CutHeader(contentType)
	if !strcomp.EqualFold(value, "multipart/form-data") {
		return "", false
	}

	for key, val := range strutil.WalkKV(params) {
		if strcomp.EqualFold(key, "boundary") {
			return val, len(val) > 0 && len(val) <= maxBoundaryLength
		}
	}

	return "", false
}

// Parts iterates over parts of the multipart body. The iteration stops after the closing
// delimiter or after the first incomplete part, which is still yielded. Data before the
// first delimiter is ignored.
func Parts(data []byte, boundary string) iter.Seq[Part] {
	return func(yield func(Part) bool) {
		delimiter := "--" + boundary
		s := internal.NewStream(uf.B2S(data))

		if !skipPreamble(&s, delimiter) || !s.Consume("\r\n") {
			return
		}

		// every delimiter except the first one belongs to the line ending preceding it
		delimiter = "\r\n" + delimiter

		for {
			part, ok := parseHeaders(&s)
			if !ok {
				yield(part)
				return
			}

			next := s.FindSubstr(delimiter)
			if next == -1 {
				part.Value = s.Rest()
				yield(part)
				return
			}

			part.Value, part.Complete = s.Advance(next), true
			if !yield(part) {
				return
			}

			s.Advance(len(delimiter))
			if s.Consume("--") || !s.Consume("\r\n") {
				return
			}
		}
	}
}

func skipPreamble(s *internal.Stream, delimiter string) bool {
	b := s.FindSubstr(delimiter)
	if b == -1 {
		return false
	}

	s.Advance(b + len(delimiter))
	return true
}

// parseHeaders consumes the part's header block including the empty line. It returns false
// if the data ends before the block does.
func parseHeaders(s *internal.Stream) (part Part, ok bool) {
	for !s.Consume("\r\n") {
		line, ok := s.AdvanceLine()
		if !ok {
			return part, false
		}

		part = parseHeader(line, part)
	}

	return part, true
}

func parseHeader(line string, part Part) Part {
	key, value, found := strutil.CutHeaderLine(line)
	if !found {
		return part
	}

	switch {
	case strcomp.EqualFold(key, "Content-Disposition"):
		_, params := strutil.CutHeader(value)
		for param, val := range strutil.WalkKV(params) {
			switch {
			case strcomp.EqualFold(param, "name"):
				part.Name = val
			case strcomp.EqualFold(param, "filename"):
				part.Filename, part.HasFilename = val, true
			}
		}
	case strcomp.EqualFold(key, "Content-Type"):
		part.ContentType, _ = strutil.CutHeader(value)
	}

	return part
}
