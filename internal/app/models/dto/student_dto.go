package dto

import "github.com/yigit/aerowis/internal/app/models"

// StudentResponse represents a student profile
type StudentResponse struct {
	RegNo                  int64   `json:"reg_no" example:"1001"`
	Name                   string  `json:"name" example:"Asha Menon"`
	BatchID                int64   `json:"batch_id" example:"3"`
	BatchName              string  `json:"batch_name,omitempty" example:"CPL 2025 A"`
	BatchStartDate         *string `json:"batch_start_date,omitempty"`
	JoinDate               *string `json:"join_date"`
	Gender                 string  `json:"gender"`
	Phone                  string  `json:"phone"`
	Address                string  `json:"address"`
	DOB                    *string `json:"dob"`
	BloodGroup             string  `json:"blood_group"`
	FatherName             string  `json:"father_name"`
	FatherPhone            string  `json:"father_phone"`
	MotherName             string  `json:"mother_name"`
	MotherPhone            string  `json:"mother_phone"`
	EducationQualification string  `json:"education_qualification"`
	Email                  string  `json:"email"`
	DocumentsLink          string  `json:"documents_link"`
	TotalClasses           int     `json:"total_classes"`
	Attendance             int     `json:"attendance"`
	PhotoURL               string  `json:"photo_url,omitempty"`
}

// CreateStudentRequest represents student registration data
type CreateStudentRequest struct {
	RegNo                  int64  `json:"reg_no" binding:"required,gt=0"`
	Name                   string `json:"name" binding:"required,notblank"`
	BatchID                int64  `json:"batch_id" binding:"required,gt=0"`
	JoinDate               string `json:"join_date" binding:"omitempty,datetime=2006-01-02"`
	Gender                 string `json:"gender"`
	Phone                  string `json:"phone"`
	Address                string `json:"address"`
	DOB                    string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	BloodGroup             string `json:"blood_group"`
	FatherName             string `json:"father_name"`
	FatherPhone            string `json:"father_phone"`
	MotherName             string `json:"mother_name"`
	MotherPhone            string `json:"mother_phone"`
	EducationQualification string `json:"education_qualification"`
	Email                  string `json:"email" binding:"omitempty,email"`
	DocumentsLink          string `json:"documents_link"`
	TotalClasses           int    `json:"total_classes" binding:"gte=0"`
	Attendance             int    `json:"attendance" binding:"gte=0"`
}

// UpdateStudentRequest carries the student fields to change. Empty text clears a field.
type UpdateStudentRequest struct {
	Name                   *string `json:"name" binding:"omitempty,notblank"`
	BatchID                *int64  `json:"batch_id" binding:"omitempty,gt=0"`
	JoinDate               *string `json:"join_date" binding:"omitempty,datetime=2006-01-02"`
	Gender                 *string `json:"gender"`
	Phone                  *string `json:"phone"`
	Address                *string `json:"address"`
	DOB                    *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	BloodGroup             *string `json:"blood_group"`
	FatherName             *string `json:"father_name"`
	FatherPhone            *string `json:"father_phone"`
	MotherName             *string `json:"mother_name"`
	MotherPhone            *string `json:"mother_phone"`
	EducationQualification *string `json:"education_qualification"`
	Email                  *string `json:"email"`
	DocumentsLink          *string `json:"documents_link"`
	TotalClasses           *int    `json:"total_classes" binding:"omitempty,gte=0"`
	Attendance             *int    `json:"attendance" binding:"omitempty,gte=0"`
}

// PhotoResponse tells where a student's photo is served from
type PhotoResponse struct {
	RegNo     int64  `json:"reg_no"`
	URL       string `json:"url"`
	IsDefault bool   `json:"is_default"`
}

// ToModel converts the request into a student
func (r CreateStudentRequest) ToModel() (*models.Student, error) {
	joinDate, err := parseOptionalDate("join_date", r.JoinDate)
	if err != nil {
		return nil, err
	}
	dob, err := parseOptionalDate("dob", r.DOB)
	if err != nil {
		return nil, err
	}

	return &models.Student{
		RegNo:                  r.RegNo,
		Name:                   r.Name,
		BatchID:                r.BatchID,
		JoinDate:               joinDate,
		Gender:                 r.Gender,
		Phone:                  r.Phone,
		Address:                r.Address,
		DOB:                    dob,
		BloodGroup:             r.BloodGroup,
		FatherName:             r.FatherName,
		FatherPhone:            r.FatherPhone,
		MotherName:             r.MotherName,
		MotherPhone:            r.MotherPhone,
		EducationQualification: r.EducationQualification,
		Email:                  r.Email,
		DocumentsLink:          r.DocumentsLink,
		TotalClasses:           r.TotalClasses,
		Attendance:             r.Attendance,
	}, nil
}

// ToPatch converts the request into a student patch
func (r UpdateStudentRequest) ToPatch() (models.StudentPatch, error) {
	joinDate, err := parseDatePatch("join_date", r.JoinDate)
	if err != nil {
		return models.StudentPatch{}, err
	}
	dob, err := parseDatePatch("dob", r.DOB)
	if err != nil {
		return models.StudentPatch{}, err
	}

	return models.StudentPatch{
		Name:                   r.Name,
		BatchID:                r.BatchID,
		JoinDate:               joinDate,
		Gender:                 r.Gender,
		Phone:                  r.Phone,
		Address:                r.Address,
		DOB:                    dob,
		BloodGroup:             r.BloodGroup,
		FatherName:             r.FatherName,
		FatherPhone:            r.FatherPhone,
		MotherName:             r.MotherName,
		MotherPhone:            r.MotherPhone,
		EducationQualification: r.EducationQualification,
		Email:                  r.Email,
		DocumentsLink:          r.DocumentsLink,
		TotalClasses:           r.TotalClasses,
		Attendance:             r.Attendance,
	}, nil
}

// FromStudent converts a student to its response. photoURL may be empty.
func FromStudent(s *models.Student, photoURL string) StudentResponse {
	return StudentResponse{
		RegNo:                  s.RegNo,
		Name:                   s.Name,
		BatchID:                s.BatchID,
		BatchName:              s.BatchName,
		BatchStartDate:         formatOptionalDate(s.BatchStartDate),
		JoinDate:               formatOptionalDate(s.JoinDate),
		Gender:                 s.Gender,
		Phone:                  s.Phone,
		Address:                s.Address,
		DOB:                    formatOptionalDate(s.DOB),
		BloodGroup:             s.BloodGroup,
		FatherName:             s.FatherName,
		FatherPhone:            s.FatherPhone,
		MotherName:             s.MotherName,
		MotherPhone:            s.MotherPhone,
		EducationQualification: s.EducationQualification,
		Email:                  s.Email,
		DocumentsLink:          s.DocumentsLink,
		TotalClasses:           s.TotalClasses,
		Attendance:             s.Attendance,
		PhotoURL:               photoURL,
	}
}
