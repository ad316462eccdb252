package status

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	for _, code := range KnownCodes {
		require.Equal(t, strconv.Itoa(int(code)), StringCode(code))
		require.NotEqual(t, Status("Unknown Status Code"), Text(code))
	}

	require.Equal(t, Status("Unknown Status Code"), Text(418))
}

func TestErrors(t *testing.T) {
	t.Run("message is the reason phrase", func(t *testing.T) {
		require.Equal(t, "No File Selected", ErrNoFileSelected.Error())
		require.Equal(t, "File Size Too Large", ErrFileTooLarge.Error())
		require.Equal(t, "File Name Exists", ErrFileExists.Error())
		require.Equal(t, "Bad Request", ErrBadRequest.Error())
	})

	t.Run("errors.As", func(t *testing.T) {
		var httpErr HTTPError
		require.True(t, errors.As(ErrSourceMissing, &httpErr))
		require.Equal(t, NotFound, httpErr.Code)
		require.Equal(t, Status("Source Image Not Found"), httpErr.Message)
	})
}
