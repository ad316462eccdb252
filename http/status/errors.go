package status

// HTTPError is a rejection. Message is both the reason phrase of the status line and the
// complete response body.
type HTTPError struct {
	Message Status
	Code    Code
}

func NewError(code Code, message Status) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return string(h.Message)
}

var (
	ErrBadRequest     = NewError(BadRequest, Text(BadRequest))
	ErrNotFound       = NewError(NotFound, Text(NotFound))
	ErrFileExists     = NewError(FileExists, Text(FileExists))
	ErrNoFileSelected = NewError(NoFileSelected, Text(NoFileSelected))
	ErrFileTooLarge   = NewError(FileTooLarge, Text(FileTooLarge))
	ErrSourceMissing  = NewError(NotFound, "Source Image Not Found")
	ErrStorageFailed  = NewError(InternalServerError, Text(InternalServerError))
)
