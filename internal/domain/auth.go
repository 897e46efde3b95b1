package domain

// SubjectType differentiates user vs department tokens.
type SubjectType string

const (
	SubjectTypeUser       SubjectType = "USER"
	SubjectTypeDepartment SubjectType = "DEPARTMENT"
)
