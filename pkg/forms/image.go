package forms

import (
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/pkg/errors"
)

// MaxImageBytes caps uploaded images at 5MB.
const MaxImageBytes = 5 << 20

var (
	ErrImageTooLarge   = errors.New("Image must be 5MB or smaller")
	ErrUnsupportedType = errors.New("Only JPEG, PNG, and GIF images are allowed")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// ValidateImage reads an uploaded file and returns a pending image reference.
// The MIME type is sniffed from the content, not taken from the upload's
// declared headers. A rejection aborts only the attachment, never the whole
// form; callers surface the error inline.
func ValidateImage(fh *multipart.FileHeader) (models.ImageRef, error) {
	if fh.Size > MaxImageBytes {
		return models.ImageRef{}, ErrImageTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return models.ImageRef{}, errors.WithStack(err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		return models.ImageRef{}, errors.WithStack(err)
	}
	if len(data) > MaxImageBytes {
		return models.ImageRef{}, ErrImageTooLarge
	}

	detected := mimetype.Detect(data)
	if !allowedImageTypes[detected.String()] {
		return models.ImageRef{}, ErrUnsupportedType
	}

	return models.PendingImage(data, detected.String()), nil
}
