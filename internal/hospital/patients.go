package hospital

import (
	"fmt"
	"strings"
	"time"

	"github.com/chpms/chpms/internal/models"
)

// AddPatientInput contains data for admitting a new patient.
type AddPatientInput struct {
	Name      string
	Age       int
	Condition string
	Room      *int
	NextOfKin string
	Insurance *models.Insurance
}

// AddPatient admits a new patient, assigning the next patient number.
// Numbers are strictly increasing and never reused.
func (s *System) AddPatient(input AddPatientInput) (*models.Patient, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, invalidf("name", "must not be empty")
	}
	if input.Age < 0 {
		return nil, invalidf("age", "must be non-negative, got %d", input.Age)
	}
	if input.Insurance != nil {
		if err := input.Insurance.Validate(); err != nil {
			return nil, invalidf("insurance", "%v", err)
		}
	}
	if input.Room != nil {
		if *input.Room < 1 {
			return nil, invalidf("room", "must be positive, got %d", *input.Room)
		}
		if occupant, ok := s.rooms[*input.Room]; ok {
			return nil, invalidf("room", "room %d is occupied by patient %d", *input.Room, occupant)
		}
	}

	p := &models.Patient{
		PatientNumber: s.nextPatientNumber,
		Name:          input.Name,
		Age:           input.Age,
		Condition:     input.Condition,
		Status:        models.StatusNormal,
		NextOfKin:     input.NextOfKin,
		Insurance:     input.Insurance,
	}
	if input.Room != nil {
		room := *input.Room
		p.RoomNumber = &room
		s.rooms[room] = p.PatientNumber
	}

	s.patients[p.PatientNumber] = p
	s.patientOrder = append(s.patientOrder, p.PatientNumber)
	s.nextPatientNumber++

	return p, nil
}

// PatientUpdate contains optional field changes for a patient. Nil fields
// are left unchanged. The patient number is immutable and has no field here.
type PatientUpdate struct {
	Name      *string
	Age       *int
	Condition *string
	NextOfKin *string
	Insurance *models.Insurance
	// ClearInsurance removes the coverage; mutually exclusive with Insurance.
	ClearInsurance bool
}

// EditPatient applies a partial update. All fields are validated before any
// is applied, so a rejected update leaves the record untouched.
func (s *System) EditPatient(key string, update PatientUpdate) error {
	p, err := s.findPatient(key)
	if err != nil {
		return err
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return invalidf("name", "must not be empty")
	}
	if update.Age != nil && *update.Age < 0 {
		return invalidf("age", "must be non-negative, got %d", *update.Age)
	}
	if update.Insurance != nil {
		if update.ClearInsurance {
			return invalidf("insurance", "cannot both set and clear insurance")
		}
		if err := update.Insurance.Validate(); err != nil {
			return invalidf("insurance", "%v", err)
		}
	}

	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Age != nil {
		p.Age = *update.Age
	}
	if update.Condition != nil {
		p.Condition = *update.Condition
	}
	if update.NextOfKin != nil {
		p.NextOfKin = *update.NextOfKin
	}
	if update.Insurance != nil {
		p.Insurance = update.Insurance
	}
	if update.ClearInsurance {
		p.Insurance = nil
	}
	return nil
}

// RemovePatient deletes a patient. Owned procedures and bills go with the
// record, the room is released, and the number is never reissued.
func (s *System) RemovePatient(key string) error {
	p, err := s.findPatient(key)
	if err != nil {
		return err
	}

	if p.RoomNumber != nil {
		delete(s.rooms, *p.RoomNumber)
	}
	delete(s.patients, p.PatientNumber)
	for i, n := range s.patientOrder {
		if n == p.PatientNumber {
			s.patientOrder = append(s.patientOrder[:i], s.patientOrder[i+1:]...)
			break
		}
	}
	return nil
}

// SetStatus changes a patient's clinical status, enforcing the transition
// rules. Setting the current status again is a no-op. Terminal statuses
// carry bookkeeping of their own (room release, date of death) and are
// entered through Discharge and RecordDeath, never here.
func (s *System) SetStatus(key string, status models.PatientStatus) error {
	p, err := s.findPatient(key)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return invalidf("status", "unknown status %q", status)
	}
	if status == p.Status {
		return nil
	}
	if status.Terminal() {
		return invalidf("status", "%s is set via discharge or record-death", status)
	}
	if !p.Status.CanTransition(status) {
		return fmt.Errorf("%s -> %s: %w", p.Status, status, ErrInvalidTransition)
	}
	p.Status = status
	return nil
}

// AssignRoom moves a patient into a room. The room must be free and the
// patient must not be in a terminal status.
func (s *System) AssignRoom(key string, room int) error {
	p, err := s.findPatient(key)
	if err != nil {
		return err
	}
	if p.Status.Terminal() {
		return fmt.Errorf("assign room: %w", ErrTerminalStatus)
	}
	if room < 1 {
		return invalidf("room", "must be positive, got %d", room)
	}
	if occupant, ok := s.rooms[room]; ok && occupant != p.PatientNumber {
		return invalidf("room", "room %d is occupied by patient %d", room, occupant)
	}

	if p.RoomNumber != nil {
		delete(s.rooms, *p.RoomNumber)
	}
	p.RoomNumber = &room
	s.rooms[room] = p.PatientNumber
	return nil
}

// Discharge moves a patient to the terminal discharged status and releases
// their room.
func (s *System) Discharge(key string) error {
	p, err := s.findPatient(key)
	if err != nil {
		return err
	}
	if !p.Status.CanTransition(models.StatusDischarged) {
		return fmt.Errorf("%s -> %s: %w", p.Status, models.StatusDischarged, ErrInvalidTransition)
	}
	p.Status = models.StatusDischarged
	s.releaseRoom(p)
	return nil
}

// RecordDeath moves a patient to the terminal deceased status, records the
// date of death, and releases their room.
func (s *System) RecordDeath(key string, date time.Time) error {
	p, err := s.findPatient(key)
	if err != nil {
		return err
	}
	if date.IsZero() {
		return invalidf("date", "date of death is required")
	}
	if !p.Status.CanTransition(models.StatusDeceased) {
		return fmt.Errorf("%s -> %s: %w", p.Status, models.StatusDeceased, ErrInvalidTransition)
	}
	p.Status = models.StatusDeceased
	p.DateOfDeath = &date
	s.releaseRoom(p)
	return nil
}

func (s *System) releaseRoom(p *models.Patient) {
	if p.RoomNumber != nil {
		delete(s.rooms, *p.RoomNumber)
		p.RoomNumber = nil
	}
}
