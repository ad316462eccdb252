package strutil

import (
	"iter"
	"strings"
)

// WalkKV iterates over semicolon-separated key=value parameters, as found in Content-Type and
// Content-Disposition headers. Quoted values may contain semicolons and spaces; quotes are
// stripped. A parameter without a value yields an empty value. Keys are stripped of
// surrounding whitespaces, but not decoded in any way.
func WalkKV(data string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for data = LStripWS(data); len(data) > 0; data = LStripWS(data) {
			var key, value string

			eq := strings.IndexAny(data, "=;")
			if eq == -1 || data[eq] == ';' {
				end := len(data)
				if eq != -1 {
					end = eq
				}

				key, data = data[:end], data[min(end+1, len(data)):]
				if !yield(StripWS(key), "") {
					return
				}

				continue
			}

			key, data = StripWS(data[:eq]), LStripWS(data[eq+1:])
			value, data = cutValue(data)

			if !yield(key, value) {
				return
			}
		}
	}
}

// cutValue returns the leading value of the data (unquoted if it was quoted) and the rest of
// the data after the value's terminating semicolon.
func cutValue(data string) (value, rest string) {
	if len(data) > 0 && data[0] == '"' {
		closing := strings.IndexByte(data[1:], '"')
		if closing == -1 {
			// unterminated quote takes the rest of the line
			return data[1:], ""
		}

		value, rest = data[1:closing+1], data[closing+2:]
		if semicolon := strings.IndexByte(rest, ';'); semicolon != -1 {
			return value, rest[semicolon+1:]
		}

		return value, ""
	}

	if semicolon := strings.IndexByte(data, ';'); semicolon != -1 {
		return RStripWS(data[:semicolon]), data[semicolon+1:]
	}

	return RStripWS(data), ""
}
