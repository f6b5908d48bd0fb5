package service

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omenblog/internal/apperror"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newUpload(name string, data []byte) *Upload {
	return &Upload{FileName: name, File: bytes.NewReader(data), Size: int64(len(data))}
}

func TestValidateUpload(t *testing.T) {
	t.Run("accepts a png and rewinds the reader", func(t *testing.T) {
		upload := newUpload("card.png", pngHeader)

		contentType, err := ValidateUpload(upload, 1024)

		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)

		data, err := io.ReadAll(upload.File)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, data)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ValidateUpload(nil, 1024)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("file over the limit", func(t *testing.T) {
		_, err := ValidateUpload(newUpload("card.png", pngHeader), 8)

		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		assert.Contains(t, err.Error(), "8 B")
	})

	t.Run("content type is sniffed, not taken from the name", func(t *testing.T) {
		_, err := ValidateUpload(newUpload("card.png", []byte("just some text")), 1024)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})
}
