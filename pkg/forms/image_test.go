package forms

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gifHeader is the smallest payload mimetype sniffs as image/gif.
var gifHeader = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")

func uploadFileHeader(t *testing.T, filename string, contents []byte) *multipart.FileHeader {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(contents)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["image"][0]
}

func TestValidateImageAcceptsGIF(t *testing.T) {
	t.Parallel()
	fh := uploadFileHeader(t, "avatar.gif", gifHeader)

	ref, err := ValidateImage(fh)
	require.NoError(t, err)
	assert.Equal(t, models.ImagePending, ref.State())

	data, mime := ref.Pending()
	assert.Equal(t, gifHeader, data)
	assert.Equal(t, "image/gif", mime)
}

func TestValidateImageSniffsContentNotFilename(t *testing.T) {
	t.Parallel()
	// a text file renamed to .png is still rejected
	fh := uploadFileHeader(t, "trickery.png", []byte("definitely not an image"))

	_, err := ValidateImage(fh)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValidateImageRejectsOversize(t *testing.T) {
	t.Parallel()
	big := make([]byte, MaxImageBytes+1)
	copy(big, gifHeader)
	fh := uploadFileHeader(t, "huge.gif", big)

	_, err := ValidateImage(fh)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}
