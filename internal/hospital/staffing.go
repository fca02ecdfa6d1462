package hospital

import (
	"fmt"
	"strings"

	"github.com/chpms/chpms/internal/models"
	"github.com/chpms/chpms/internal/util"
)

// AddDepartment creates a new department. Names are unique system-wide.
func (s *System) AddDepartment(name string) (*models.Department, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidf("department", "name must not be empty")
	}
	if _, ok := s.departments[name]; ok {
		return nil, fmt.Errorf("department %q: %w", name, ErrDuplicateDepartment)
	}
	d := &models.Department{Name: name}
	s.departments[name] = d
	s.deptOrder = append(s.deptOrder, name)
	return d, nil
}

// RemoveDepartment deletes a department. Removal is refused while any
// patient's attending doctor belongs to it, so no reference can dangle.
func (s *System) RemoveDepartment(name string) error {
	if _, err := s.findDepartment(name); err != nil {
		return err
	}
	for _, n := range s.patientOrder {
		ref := s.patients[n].AssignedDoctor
		if ref != nil && ref.Department == name {
			return fmt.Errorf("department %q: %w", name, ErrDepartmentNotEmpty)
		}
	}
	delete(s.departments, name)
	for i, n := range s.deptOrder {
		if n == name {
			s.deptOrder = append(s.deptOrder[:i], s.deptOrder[i+1:]...)
			break
		}
	}
	return nil
}

// AddStaffInput contains data for hiring a staff member into a department.
type AddStaffInput struct {
	Name      string
	Age       int
	Role      models.StaffRole
	Specialty string
}

// AddStaff adds a staff member to an existing department. The department
// must already exist; it is not created implicitly.
func (s *System) AddStaff(departmentName string, input AddStaffInput) (*models.Staff, error) {
	d, err := s.findDepartment(departmentName)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, invalidf("name", "must not be empty")
	}
	if input.Age < 0 {
		return nil, invalidf("age", "must be non-negative, got %d", input.Age)
	}
	if !input.Role.Valid() {
		return nil, invalidf("role", "unknown role %q", input.Role)
	}

	member := &models.Staff{
		ID:        util.NewID(),
		Name:      input.Name,
		Age:       input.Age,
		Role:      input.Role,
		Specialty: input.Specialty,
	}
	d.Staff = append(d.Staff, member)
	return member, nil
}

// StaffUpdate contains optional field changes for a staff member.
type StaffUpdate struct {
	Name      *string
	Age       *int
	Specialty *string
}

// EditStaff applies a partial update to a staff member.
func (s *System) EditStaff(departmentName, staffKey string, update StaffUpdate) error {
	d, err := s.findDepartment(departmentName)
	if err != nil {
		return err
	}
	member := d.FindStaff(staffKey)
	if member == nil {
		return fmt.Errorf("staff %q in %q: %w", staffKey, departmentName, ErrNotFound)
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return invalidf("name", "must not be empty")
	}
	if update.Age != nil && *update.Age < 0 {
		return invalidf("age", "must be non-negative, got %d", *update.Age)
	}

	if update.Name != nil {
		member.Name = *update.Name
	}
	if update.Age != nil {
		member.Age = *update.Age
	}
	if update.Specialty != nil {
		member.Specialty = *update.Specialty
	}
	return nil
}

// RemoveStaff deletes a staff member. Every patient whose attending doctor
// was this member has the assignment cleared, never left dangling.
func (s *System) RemoveStaff(departmentName, staffKey string) error {
	d, err := s.findDepartment(departmentName)
	if err != nil {
		return err
	}
	member := d.FindStaff(staffKey)
	if member == nil {
		return fmt.Errorf("staff %q in %q: %w", staffKey, departmentName, ErrNotFound)
	}

	for _, n := range s.patientOrder {
		p := s.patients[n]
		if p.AssignedDoctor != nil &&
			p.AssignedDoctor.Department == departmentName &&
			p.AssignedDoctor.StaffID == member.ID {
			p.AssignedDoctor = nil
		}
	}
	d.RemoveStaff(member.ID)
	return nil
}

// AssignPatientToDoctor sets a patient's attending doctor. The staff member
// must belong to the named department and hold the doctor role.
func (s *System) AssignPatientToDoctor(patientKey, departmentName, doctorKey string) error {
	p, err := s.findPatient(patientKey)
	if err != nil {
		return err
	}
	if p.Status.Terminal() {
		return fmt.Errorf("assign doctor: %w", ErrTerminalStatus)
	}
	d, err := s.findDepartment(departmentName)
	if err != nil {
		return err
	}
	member := d.FindStaff(doctorKey)
	if member == nil {
		return fmt.Errorf("staff %q in %q: %w", doctorKey, departmentName, ErrNotFound)
	}
	if member.Role != models.RoleDoctor {
		return fmt.Errorf("%s (%s): %w", member.Name, member.Role, ErrRoleMismatch)
	}

	p.AssignedDoctor = &models.StaffRef{Department: departmentName, StaffID: member.ID}
	return nil
}

// ListStaff returns a department's staff in insertion order.
func (s *System) ListStaff(departmentName string) ([]*models.Staff, error) {
	d, err := s.findDepartment(departmentName)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Staff, len(d.Staff))
	copy(out, d.Staff)
	return out, nil
}

// AttendingDoctor resolves a patient's assigned doctor, or nil when none
// is assigned.
func (s *System) AttendingDoctor(patientKey string) (*models.Staff, error) {
	p, err := s.findPatient(patientKey)
	if err != nil {
		return nil, err
	}
	if p.AssignedDoctor == nil {
		return nil, nil
	}
	d, ok := s.departments[p.AssignedDoctor.Department]
	if !ok {
		return nil, fmt.Errorf("department %q: %w", p.AssignedDoctor.Department, ErrNotFound)
	}
	member := d.FindStaff(p.AssignedDoctor.StaffID)
	if member == nil {
		return nil, fmt.Errorf("staff %q: %w", p.AssignedDoctor.StaffID, ErrNotFound)
	}
	return member, nil
}
