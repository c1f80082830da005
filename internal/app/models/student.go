package models

import (
	"time"

	"github.com/yigit/aerowis/internal/pkg/helpers"
)

// Student defines the student model based on the 'students' table
type Student struct {
	RegNo                  int64      `json:"reg_no" db:"reg_no"` // assigned by the academy, not generated
	Name                   string     `json:"name" db:"name"`
	BatchID                int64      `json:"batch_id" db:"batch_id"`
	JoinDate               *time.Time `json:"join_date" db:"join_date"`
	Gender                 string     `json:"gender" db:"gender"`
	Phone                  string     `json:"phone" db:"phone"`
	Address                string     `json:"address" db:"address"`
	DOB                    *time.Time `json:"dob" db:"dob"`
	BloodGroup             string     `json:"blood_group" db:"blood_group"`
	FatherName             string     `json:"father_name" db:"father_name"`
	FatherPhone            string     `json:"father_phone" db:"father_phone"`
	MotherName             string     `json:"mother_name" db:"mother_name"`
	MotherPhone            string     `json:"mother_phone" db:"mother_phone"`
	EducationQualification string     `json:"education_qualification" db:"education_qualification"`
	Email                  string     `json:"email" db:"email"`
	DocumentsLink          string     `json:"documents_link" db:"documents_link"`
	TotalClasses           int        `json:"total_classes" db:"total_classes"`
	Attendance             int        `json:"attendance" db:"attendance"`

	// Joined from batches
	BatchName      string     `json:"batch_name,omitempty" db:"batch_name"`
	BatchStartDate *time.Time `json:"batch_start_date,omitempty" db:"batch_start_date"`
}

// StudentFilter narrows student listings
type StudentFilter struct {
	BatchID *int64
	Search  string // matched against name, reg_no and phone, case-insensitive
}

// StudentPatch holds the student fields to change; nil fields are left alone
type StudentPatch struct {
	Name                   *string
	BatchID                *int64
	JoinDate               *time.Time
	Gender                 *string
	Phone                  *string
	Address                *string
	DOB                    *time.Time
	BloodGroup             *string
	FatherName             *string
	FatherPhone            *string
	MotherName             *string
	MotherPhone            *string
	EducationQualification *string
	Email                  *string
	DocumentsLink          *string
	TotalClasses           *int
	Attendance             *int
}

// Changes maps the set fields to their columns. Blank text clears the column.
func (p StudentPatch) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.BatchID != nil {
		changes["batch_id"] = *p.BatchID
	}
	if p.JoinDate != nil {
		changes["join_date"] = *p.JoinDate
	}
	if p.DOB != nil {
		changes["dob"] = *p.DOB
	}
	if p.TotalClasses != nil {
		changes["total_classes"] = *p.TotalClasses
	}
	if p.Attendance != nil {
		changes["attendance"] = *p.Attendance
	}

	optional := map[string]*string{
		"gender":                  p.Gender,
		"phone":                   p.Phone,
		"address":                 p.Address,
		"blood_group":             p.BloodGroup,
		"father_name":             p.FatherName,
		"father_phone":            p.FatherPhone,
		"mother_name":             p.MotherName,
		"mother_phone":            p.MotherPhone,
		"education_qualification": p.EducationQualification,
		"email":                   p.Email,
		"documents_link":          p.DocumentsLink,
	}
	for column, value := range optional {
		if value != nil {
			changes[column] = helpers.NullIfEmpty(*value)
		}
	}
	return changes
}
