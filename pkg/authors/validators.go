package authors

import "mime/multipart"

// ListAuthorsQuery filters the in-memory collection; searching never triggers
// a fetch.
type ListAuthorsQuery struct {
	Search string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

// AuthorPayload is the create/update multipart form body. The optional
// profile image arrives as the profileImage file part.
type AuthorPayload struct {
	Name string `form:"name" json:"name" validate:"required,min=2,max=100"`
	Bio  string `form:"bio" json:"bio" validate:"required,max=1000"`

	FormFiles map[string]*multipart.FileHeader `form:"-" json:"-"`
}
