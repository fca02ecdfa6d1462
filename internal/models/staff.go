package models

import (
	"fmt"
	"strings"
)

// StaffRole represents a staff member's role.
type StaffRole string

const (
	RoleDoctor StaffRole = "doctor"
	RoleNurse  StaffRole = "nurse"
	RoleOther  StaffRole = "other"
)

// Valid returns true if the role is a recognized value.
func (r StaffRole) Valid() bool {
	return r == RoleDoctor || r == RoleNurse || r == RoleOther
}

// String returns the display string for the role.
func (r StaffRole) String() string {
	switch r {
	case RoleDoctor:
		return "Doctor"
	case RoleNurse:
		return "Nurse"
	case RoleOther:
		return "Staff"
	default:
		return "Unknown"
	}
}

// Staff represents a staff member belonging to a department.
type Staff struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Role      StaffRole `json:"role"`
	Specialty string    `json:"specialty,omitempty"`
}

// Validate checks that the staff record is valid.
func (s *Staff) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if s.Age < 0 {
		return fmt.Errorf("age must be non-negative")
	}
	if !s.Role.Valid() {
		return fmt.Errorf("invalid role: %s", s.Role)
	}
	return nil
}
