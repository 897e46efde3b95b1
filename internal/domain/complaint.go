package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusDraft ComplaintStatus = "DRAFT"
	ComplaintStatusFinal ComplaintStatus = "FINAL"
)

// ApplicationLanguage selects the language of a generated application text.
type ApplicationLanguage string

const (
	LanguageEnglish ApplicationLanguage = "English"
	LanguageHindi   ApplicationLanguage = "Hindi"
)

// Complaint is the aggregate for citizen grievances. A complaint record is
// created only at final submission; the draft phase is client-held.
type Complaint struct {
	ID                 string
	ComplaintKey       string
	UserID             string
	DepartmentID       string
	Problem            string
	Address            string
	Phone              string
	EnglishApplication string
	HindiApplication   string
	Status             ComplaintStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
