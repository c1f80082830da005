package filestorage

import (
	"io"

	"github.com/yigit/aerowis/internal/domain"
)

// PhotoStore keeps one profile photo per student, keyed by registration number
type PhotoStore interface {
	// Save normalises the image read from r and stores it, replacing any previous photo.
	// It returns the URL the photo is served from.
	Save(regNo int64, r io.Reader) (string, error)

	// URL returns the student's photo URL or the default avatar for gender.
	URL(regNo int64, gender domain.Gender) string

	// Has reports whether a photo was uploaded for the student
	Has(regNo int64) bool

	// Delete removes the student's photo. Deleting a missing photo is not an error.
	Delete(regNo int64) error
}
