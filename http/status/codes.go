package status

import "strconv"

type (
	Code   uint16
	Status string
)

// HTTP status codes the server may emit.
// See: https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml
const (
	OK                  Code = 200 // RFC 9110, 15.3.1
	BadRequest          Code = 400 // RFC 9110, 15.5.1
	NotFound            Code = 404 // RFC 9110, 15.5.5
	InternalServerError Code = 500 // RFC 9110, 15.6.1
	NotImplemented      Code = 501 // RFC 9110, 15.6.2
	BadGateway          Code = 502 // RFC 9110, 15.6.3
	ServiceUnavailable  Code = 503 // RFC 9110, 15.6.4
)

// Upload rejections reuse 5xx codes with their own reason phrases. Browsers display the
// phrase, so it doubles as the message for whoever submitted the form.
const (
	FileExists     = NotImplemented
	NoFileSelected = BadGateway
	FileTooLarge   = ServiceUnavailable
)

// KnownCodes lists every code Text has a dedicated phrase for.
var KnownCodes = []Code{
	OK, BadRequest, NotFound, InternalServerError, NotImplemented, BadGateway, ServiceUnavailable,
}

// Text returns the reason phrase for the status code.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case InternalServerError:
		return "Internal Server Error"
	case FileExists:
		return "File Name Exists"
	case NoFileSelected:
		return "No File Selected"
	case FileTooLarge:
		return "File Size Too Large"
	default:
		return "Unknown Status Code"
	}
}

// StringCode returns the decimal representation of the code.
func StringCode(code Code) string {
	return strconv.Itoa(int(code))
}
