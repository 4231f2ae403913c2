package models

import "time"

// Author is a catalog author. The identifier is assigned by the catalog API
// and never invented locally.
type Author struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Bio          string    `json:"bio"`
	ProfileImage ImageRef  `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (a Author) EntityID() string {
	return a.ID
}

// AuthorPatch is a typed partial update. Only non-nil fields are merged.
type AuthorPatch struct {
	Name         *string
	Bio          *string
	ProfileImage *ImageRef
}

func (p AuthorPatch) Apply(a Author) Author {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Bio != nil {
		a.Bio = *p.Bio
	}
	if p.ProfileImage != nil {
		a.ProfileImage = *p.ProfileImage
	}
	return a
}
