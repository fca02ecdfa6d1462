package models

import (
	"fmt"
	"strings"
)

// Department owns a set of staff members. Patients are referenced through
// doctor assignments on the patient record, never owned here.
type Department struct {
	Name  string   `json:"name"`
	Staff []*Staff `json:"staff"`
}

// Validate checks that the department record is valid.
func (d *Department) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("department name is required")
	}
	seen := make(map[string]bool, len(d.Staff))
	for _, s := range d.Staff {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("staff %q: %w", s.Name, err)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate staff id %s", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// FindStaff resolves a staff key to a member of this department. An exact
// ID match wins; otherwise the first name match in insertion order is
// returned. Returns nil if nothing matches.
func (d *Department) FindStaff(key string) *Staff {
	for _, s := range d.Staff {
		if s.ID == key {
			return s
		}
	}
	for _, s := range d.Staff {
		if s.Name == key {
			return s
		}
	}
	return nil
}

// RemoveStaff deletes the staff member with the given ID, preserving the
// order of the remaining members. Returns true if a member was removed.
func (d *Department) RemoveStaff(id string) bool {
	for i, s := range d.Staff {
		if s.ID == id {
			d.Staff = append(d.Staff[:i], d.Staff[i+1:]...)
			return true
		}
	}
	return false
}

// Doctors returns the department's doctors in insertion order.
func (d *Department) Doctors() []*Staff {
	var out []*Staff
	for _, s := range d.Staff {
		if s.Role == RoleDoctor {
			out = append(out, s)
		}
	}
	return out
}
