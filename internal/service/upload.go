package service

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"omenblog/internal/apperror"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Upload is a header image received from a multipart form.
type Upload struct {
	FileName string
	File     io.ReadSeeker
	Size     int64
}

// ValidateUpload checks the size limit and sniffs the real content type from
// the file bytes. The file is rewound before returning.
func ValidateUpload(upload *Upload, maxSize int64) (string, error) {
	if upload == nil || upload.File == nil {
		return "", apperror.Validation("header image is required")
	}

	if upload.Size <= 0 {
		return "", apperror.Validation("header image is empty")
	}

	if upload.Size > maxSize {
		return "", apperror.Validation(fmt.Sprintf("header image is too large (max %s)", humanize.IBytes(uint64(maxSize))))
	}

	mtype, err := mimetype.DetectReader(upload.File)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInternal, "reading header image", err)
	}

	if _, err := upload.File.Seek(0, io.SeekStart); err != nil {
		return "", apperror.Wrap(apperror.KindInternal, "rewinding header image", err)
	}

	if !allowedImageTypes[mtype.String()] {
		return "", apperror.Validation("unsupported image type, allowed: JPEG, PNG, GIF, WebP")
	}

	return mtype.String(), nil
}
