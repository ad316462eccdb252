package method

type Method uint8

const (
	Unknown Method = iota
	GET
	POST
)

// Parse recognizes the methods the server handles. Everything else is Unknown.
func Parse(str string) Method {
	switch str {
	case "GET":
		return GET
	case "POST":
		return POST
	}

	return Unknown
}

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case POST:
		return "POST"
	}

	return "UNKNOWN"
}
