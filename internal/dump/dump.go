package dump

import (
	"strings"

	"github.com/indigo-web/tinyhttpd/internal/protocol/http1"
	"github.com/indigo-web/tinyhttpd/internal/strutil"
)

// Request renders the request the way it was received, except that header fields are
// normalized to the "Key: Value" form. The payload is written as is, even if it was
// truncated.
func Request(buff []byte, request http1.Request) []byte {
	buff = append(buff, request.Line...)
	buff = append(buff, '\r', '\n')

	for head := request.Head; len(head) > 0; {
		var line string
		line, head, _ = strings.Cut(head, "\r\n")
		buff = header(buff, line)
	}

	buff = append(buff, '\r', '\n')

	return append(buff, request.Payload...)
}

func header(b []byte, line string) []byte {
	key, value, found := strutil.CutHeaderLine(line)
	if !found {
		b = append(b, line...)
		return append(b, '\r', '\n')
	}

	b = append(b, key...)
	b = append(b, ':', ' ')
	b = append(b, value...)

	return append(b, '\r', '\n')
}
