package http1

import (
	"bytes"

	"github.com/indigo-web/tinyhttpd/transport"
)

var crlfcrlf = []byte("\r\n\r\n")

type Outcome uint8

const (
	// Incomplete means more data is needed.
	Incomplete Outcome = iota
	// Complete means the header block (and the declared body, if it fits) was received.
	Complete
	// Overflow means the request buffer is exhausted, but the header block is still incomplete.
	Overflow
)

func (o Outcome) String() string {
	switch o {
	case Incomplete:
		return "incomplete"
	case Complete:
		return "complete"
	case Overflow:
		return "overflow"
	}

	return "unknown"
}

type Result struct {
	Outcome Outcome
	// Request is valid only if the Outcome is Complete.
	Request Request
}

// Append appends freshly read data to the connection's buffer and checks whether a request
// can be served.
//
// The search for the terminator resumes where the previous call stopped, so a request
// delivered in any number of pieces is assembled exactly like one delivered at once. Once the
// terminator is found, a declared Content-Length postpones completion until the body
// arrives or the buffer is exhausted, whatever comes first. A truncated body is left for the
// upload extractor to reject.
func Append(conn *transport.Connection, data []byte) Result {
	conn.Append(data)
	buff := conn.Bytes()
	from := conn.Scanned()

	end := bytes.Index(buff[from:], crlfcrlf)
	if end == -1 {
		if conn.Full() {
			return Result{Outcome: Overflow}
		}

		// the terminator may start within the last 3 bytes
		conn.SetScanned(max(from, len(buff)-len(crlfcrlf)+1))
		return Result{Outcome: Incomplete}
	}

	end += from
	conn.SetScanned(end)

	request := parseRequest(buff, end)
	if !request.BodyComplete() && !conn.Full() {
		return Result{Outcome: Incomplete}
	}

	return Result{
		Outcome: Complete,
		Request: request,
	}
}
