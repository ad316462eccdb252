package strutil

import "strings"

func LStripWS(str string) string {
	for i, c := range str {
		switch c {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

// StripWS strips spaces and tabs from both sides.
func StripWS(str string) string {
	return RStripWS(LStripWS(str))
}

// CutHeader splits a header value into the value itself and its parameters, stripping
// whitespaces in between.
func CutHeader(header string) (value, params string) {
	sep := strings.IndexByte(header, ';')
	if sep == -1 {
		return RStripWS(header), ""
	}

	return RStripWS(header[:sep]), LStripWS(header[sep+1:])
}

// CutHeaderLine splits a header field line into its name and value, both stripped.
func CutHeaderLine(line string) (key, value string, found bool) {
	key, value, found = strings.Cut(line, ":")
	return StripWS(key), StripWS(value), found
}
