package testutil

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateMultipartBody builds a multipart request body holding one file part and the given form values.
// It returns the body and its Content-Type header.
func CreateMultipartBody(t *testing.T, fieldName, fileName string, fileContent []byte, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if fileName != "" {
		part, err := writer.CreateFormFile(fieldName, fileName)
		require.NoError(t, err)

		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}

	for key, value := range values {
		require.NoError(t, writer.WriteField(key, value))
	}

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}
