package models

// Role defines the staff authorization tier
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRegistrar Role = "registrar"
)

// Gender defines the student gender enumeration from the 'students' table
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ValidGender reports whether g is one of the accepted enum values.
// The empty string is accepted because gender is optional.
func ValidGender(g Gender) bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
