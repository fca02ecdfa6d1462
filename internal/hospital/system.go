// Package hospital implements the records core: the root aggregate that
// owns all patient, department and billing collections and enforces the
// cross-record invariants at mutation time.
package hospital

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/chpms/chpms/internal/models"
)

// System is the root aggregate. It is the sole entry point for mutations;
// every operation either fully succeeds or leaves the state untouched.
// Single operator by construction, so no locking.
type System struct {
	patients     map[int]*models.Patient
	patientOrder []int

	departments map[string]*models.Department
	deptOrder   []string

	// rooms maps room number to occupying patient number.
	rooms map[int]int

	// nextPatientNumber is persisted explicitly; numbers are never reused,
	// so it cannot be derived from the surviving patients.
	nextPatientNumber int
}

// NewSystem creates an empty system with patient numbering starting at 1.
func NewSystem() *System {
	return &System{
		patients:          make(map[int]*models.Patient),
		departments:       make(map[string]*models.Department),
		rooms:             make(map[int]int),
		nextPatientNumber: 1,
	}
}

// Restore rebuilds a system from persisted collections. Departments and
// patients are taken in the order given; the room index is rebuilt and
// basic consistency is checked. Cross-reference resolution is the loader's
// job and happens before Restore is called.
func Restore(nextPatientNumber int, departments []*models.Department, patients []*models.Patient) (*System, error) {
	if nextPatientNumber < 1 {
		return nil, fmt.Errorf("next_patient_number must be positive, got %d", nextPatientNumber)
	}

	s := NewSystem()
	s.nextPatientNumber = nextPatientNumber

	for _, d := range departments {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("department %q: %w", d.Name, err)
		}
		if _, ok := s.departments[d.Name]; ok {
			return nil, fmt.Errorf("duplicate department %q", d.Name)
		}
		s.departments[d.Name] = d
		s.deptOrder = append(s.deptOrder, d.Name)
	}

	for _, p := range patients {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("patient %d: %w", p.PatientNumber, err)
		}
		if p.PatientNumber >= nextPatientNumber {
			return nil, fmt.Errorf("patient %d exceeds next_patient_number %d", p.PatientNumber, nextPatientNumber)
		}
		if _, ok := s.patients[p.PatientNumber]; ok {
			return nil, fmt.Errorf("duplicate patient number %d", p.PatientNumber)
		}
		if p.RoomNumber != nil {
			if other, ok := s.rooms[*p.RoomNumber]; ok {
				return nil, fmt.Errorf("room %d occupied by both patient %d and %d", *p.RoomNumber, other, p.PatientNumber)
			}
			s.rooms[*p.RoomNumber] = p.PatientNumber
		}
		s.patients[p.PatientNumber] = p
		s.patientOrder = append(s.patientOrder, p.PatientNumber)
	}

	return s, nil
}

// NextPatientNumber returns the number the next admitted patient will get.
func (s *System) NextPatientNumber() int {
	return s.nextPatientNumber
}

// Patients returns all patients in admission order.
func (s *System) Patients() []*models.Patient {
	out := make([]*models.Patient, 0, len(s.patientOrder))
	for _, n := range s.patientOrder {
		out = append(out, s.patients[n])
	}
	return out
}

// Departments returns all departments in creation order.
func (s *System) Departments() []*models.Department {
	out := make([]*models.Department, 0, len(s.deptOrder))
	for _, name := range s.deptOrder {
		out = append(out, s.departments[name])
	}
	return out
}

// RoomOccupancy describes one occupied room.
type RoomOccupancy struct {
	Room          int
	PatientNumber int
	PatientName   string
}

// Rooms returns the occupied rooms sorted by room number.
func (s *System) Rooms() []RoomOccupancy {
	out := make([]RoomOccupancy, 0, len(s.rooms))
	for room, num := range s.rooms {
		out = append(out, RoomOccupancy{
			Room:          room,
			PatientNumber: num,
			PatientName:   s.patients[num].Name,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Room < out[j].Room })
	return out
}

// findPatient resolves a patient key. An exact patient-number match wins;
// otherwise the first name match in admission order is returned.
func (s *System) findPatient(key string) (*models.Patient, error) {
	if n, err := strconv.Atoi(key); err == nil {
		if p, ok := s.patients[n]; ok {
			return p, nil
		}
	}
	for _, n := range s.patientOrder {
		if s.patients[n].Name == key {
			return s.patients[n], nil
		}
	}
	return nil, fmt.Errorf("patient %q: %w", key, ErrNotFound)
}

// FindPatient resolves a patient key (number or name). Number matches take
// precedence; ambiguous names resolve to the earliest admission.
func (s *System) FindPatient(key string) (*models.Patient, error) {
	return s.findPatient(key)
}

// FindPatientsByName returns every patient with the given name, in
// admission order, so callers can disambiguate duplicates.
func (s *System) FindPatientsByName(name string) []*models.Patient {
	var out []*models.Patient
	for _, n := range s.patientOrder {
		if s.patients[n].Name == name {
			out = append(out, s.patients[n])
		}
	}
	return out
}

func (s *System) findDepartment(name string) (*models.Department, error) {
	d, ok := s.departments[name]
	if !ok {
		return nil, fmt.Errorf("department %q: %w", name, ErrNotFound)
	}
	return d, nil
}
