package tracker

import (
	"fmt"
	"strings"
	"time"
)

// Department is the organizational unit a user belongs to.
type Department string

const (
	DeptAdmin     Department = "Admin"
	DeptDiplomacy Department = "Diplomacy"
	DeptConsular  Department = "Consular"
	DeptProtocol  Department = "Protocol"
	DeptSecurity  Department = "Security"
	DeptFinance   Department = "Finance"
	DeptHR        Department = "HR"
	DeptIT        Department = "IT"
	DeptLegal     Department = "Legal"
	DeptMedia     Department = "Media"
	DeptOther     Department = "other"
)

// DepartmentValues lists departments in display order.
func DepartmentValues() []Department {
	return []Department{
		DeptAdmin,
		DeptDiplomacy,
		DeptConsular,
		DeptProtocol,
		DeptSecurity,
		DeptFinance,
		DeptHR,
		DeptIT,
		DeptLegal,
		DeptMedia,
		DeptOther,
	}
}

// Label returns the display label for a department.
func (d Department) Label() string {
	switch d {
	case DeptAdmin:
		return "Administration"
	case DeptDiplomacy:
		return "Diplomacy"
	case DeptConsular:
		return "Consular Services"
	case DeptProtocol:
		return "Protocol"
	case DeptSecurity:
		return "Security"
	case DeptFinance:
		return "Finance"
	case DeptHR:
		return "Human Resources"
	case DeptIT:
		return "Information Technology"
	case DeptLegal:
		return "Legal Affairs"
	case DeptMedia:
		return "Media & Communications"
	case DeptOther:
		return "Other"
	}
	return string(d)
}

// ParseDepartment validates a stored department code.
func ParseDepartment(value string) (Department, error) {
	for _, dept := range DepartmentValues() {
		if string(dept) == value {
			return dept, nil
		}
	}
	return "", fmt.Errorf("unknown department %q", value)
}

// User is an office staff member who creates, receives, and reports tasks.
type User struct {
	ID          string
	Username    string
	FirstName   string
	LastName    string
	Email       string
	Department  Department
	PhoneNumber string

	IsStaff     bool
	IsSuperuser bool
	IsActive    bool

	DateJoined time.Time
	LastLogin  *time.Time
}

// FullName returns the user's display name, falling back to the username
// when no name parts are set.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// IsAdmin reports whether the user may access administrative reports.
func (u User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}
