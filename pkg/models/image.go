package models

import (
	"github.com/segmentio/encoding/json"
)

// ImageState distinguishes the three shapes an entity image can take: nothing
// attached, a URL the catalog already hosts, or bytes selected locally that
// haven't been uploaded yet.
type ImageState int

const (
	ImageUnset ImageState = iota
	ImageRemote
	ImagePending
)

// ImageRef is a tagged variant over the image states. The zero value is Unset.
type ImageRef struct {
	state ImageState
	url   string
	data  []byte
	mime  string
}

// RemoteImage returns a reference to an image the catalog already hosts.
func RemoteImage(url string) ImageRef {
	if url == "" {
		return ImageRef{}
	}
	return ImageRef{state: ImageRemote, url: url}
}

// PendingImage returns a reference to locally selected image bytes awaiting
// upload as part of the next multipart submission.
func PendingImage(data []byte, mime string) ImageRef {
	return ImageRef{state: ImagePending, data: data, mime: mime}
}

func (r ImageRef) State() ImageState {
	return r.state
}

// URL returns the remote URL, or "" unless the state is Remote.
func (r ImageRef) URL() string {
	return r.url
}

// Pending returns the local bytes and MIME type, valid only in the Pending state.
func (r ImageRef) Pending() ([]byte, string) {
	return r.data, r.mime
}

// MarshalJSON renders the remote URL, or null when there is nothing the reader
// could fetch. Pending bytes never serialize; they travel as multipart parts.
func (r ImageRef) MarshalJSON() ([]byte, error) {
	if r.state == ImageRemote {
		return json.Marshal(r.url)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts the catalog's string-or-null representation.
func (r *ImageRef) UnmarshalJSON(b []byte) error {
	var url *string
	if err := json.Unmarshal(b, &url); err != nil {
		return err
	}
	if url == nil {
		*r = ImageRef{}
		return nil
	}
	*r = RemoteImage(*url)
	return nil
}
