package http1

import (
	"strconv"
	"strings"

	"github.com/indigo-web/tinyhttpd/http/method"
	"github.com/indigo-web/tinyhttpd/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Request is a view over a connection's buffer once the header block is complete. Strings
// refer to the buffer directly and stay valid as long as the connection isn't reused.
type Request struct {
	Method method.Method
	// Line is the request line without the trailing CRLF.
	Line string
	// Path is the raw request target following the method. It is not unescaped.
	Path string
	// Terminated reports whether the path is followed by a space.
	Terminated bool
	// Head contains the header fields, one per line, without the terminator.
	Head string
	// Payload holds everything received after the terminator.
	Payload []byte
	// Raw is the complete request as received.
	Raw []byte
}

func parseRequest(data []byte, terminator int) Request {
	head := uf.B2S(data[:terminator])
	line, fields, _ := strings.Cut(head, "\r\n")

	request := Request{
		Line:    line,
		Head:    fields,
		Payload: data[terminator+len(crlfcrlf):],
		Raw:     data,
	}

	methodToken, target, found := strings.Cut(line, " ")
	if !found {
		return request
	}

	request.Method = method.Parse(methodToken)
	request.Path, _, request.Terminated = strings.Cut(target, " ")

	return request
}

// Header returns the value of the first header field with the key. Keys are case-insensitive.
func (r Request) Header(key string) (value string, found bool) {
	for head := r.Head; len(head) > 0; {
		var line string
		line, head, _ = strings.Cut(head, "\r\n")

		name, val, ok := strutil.CutHeaderLine(line)
		if ok && strcomp.EqualFold(name, key) {
			return val, true
		}
	}

	return "", false
}

// ContentLength returns the declared body length, or -1 if none or a malformed one was
// declared.
func (r Request) ContentLength() int {
	value, found := r.Header("Content-Length")
	if !found {
		return -1
	}

	length, err := strconv.Atoi(value)
	if err != nil || length < 0 {
		return -1
	}

	return length
}

// BodyComplete reports whether the whole declared body was received.
func (r Request) BodyComplete() bool {
	return len(r.Payload) >= r.ContentLength()
}
