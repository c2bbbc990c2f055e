// Package employees implements the server-rendered employee directory:
// employee CRUD plus per-employee qualification records. All pages sit
// behind the web session gate.
package employees

import "time"

// Employee is a directory entry. Qualifications is populated by the
// repository when listing or loading a single employee.
type Employee struct {
	ID             int64
	Name           string
	DOB            time.Time
	ContactAddress string
	Qualifications []Qualification
}

// Qualification is a course result attached to one employee.
type Qualification struct {
	ID              int64
	EmployeeID      int64
	Course          string
	YearPassed      int
	MarksPercentage float64
}

// EmployeeForm carries the raw employee form fields. DOB stays a string
// until validation parses it, so a bad date can be re-rendered as typed.
type EmployeeForm struct {
	Name           string `form:"name"`
	DOB            string `form:"dob"`
	ContactAddress string `form:"contactAddress"`
}

// QualificationForm carries the raw qualification form fields.
type QualificationForm struct {
	Course          string `form:"course"`
	YearPassed      string `form:"yearPassed"`
	MarksPercentage string `form:"marksPercentage"`
}
