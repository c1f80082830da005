package domain

import "strings"

// Gender as recorded on a student profile. Only used to pick a default avatar.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// NormalizeGender maps free-form input ("Female", " F ") to a Gender.
// Anything unrecognised is treated as male, matching the avatar fallback.
func NormalizeGender(raw string) Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "female", "f":
		return GenderFemale
	default:
		return GenderMale
	}
}

// Photo describes where a student's profile picture can be fetched
type Photo struct {
	RegNo     int64  `json:"reg_no"`
	URL       string `json:"url"`
	IsDefault bool   `json:"is_default"`
}
