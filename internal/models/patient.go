// Package models defines the domain records for CH-PMS.
package models

import (
	"fmt"
	"strings"
	"time"
)

// PatientStatus represents the clinical status of a patient.
type PatientStatus string

const (
	StatusNormal     PatientStatus = "normal"
	StatusSurgery    PatientStatus = "surgery"
	StatusEmergency  PatientStatus = "emergency"
	StatusDischarged PatientStatus = "discharged"
	StatusDeceased   PatientStatus = "deceased"
)

// Valid returns true if the status is a recognized value.
func (s PatientStatus) Valid() bool {
	switch s {
	case StatusNormal, StatusSurgery, StatusEmergency, StatusDischarged, StatusDeceased:
		return true
	default:
		return false
	}
}

// String returns the display string for the status.
func (s PatientStatus) String() string {
	switch s {
	case StatusNormal:
		return "Normal"
	case StatusSurgery:
		return "Surgery"
	case StatusEmergency:
		return "Emergency"
	case StatusDischarged:
		return "Discharged"
	case StatusDeceased:
		return "Deceased"
	default:
		return "Unknown"
	}
}

// Terminal returns true if no further status transitions are permitted.
func (s PatientStatus) Terminal() bool {
	return s == StatusDischarged || s == StatusDeceased
}

// CanTransition reports whether the status may change to the given target.
// Normal moves freely to and from surgery and emergency; any non-terminal
// status may move to discharged or deceased exactly once. Surgery and
// emergency must pass through normal to reach each other.
func (s PatientStatus) CanTransition(to PatientStatus) bool {
	if !s.Valid() || !to.Valid() {
		return false
	}
	if s.Terminal() {
		return false
	}
	if to.Terminal() {
		return true
	}
	switch s {
	case StatusNormal:
		return to == StatusSurgery || to == StatusEmergency
	case StatusSurgery, StatusEmergency:
		return to == StatusNormal
	default:
		return false
	}
}

// Insurance holds a patient's insurance coverage.
type Insurance struct {
	Provider    string  `json:"provider"`
	DiscountPct float64 `json:"discount_pct"`
}

// Validate checks that the insurance record is valid.
func (i *Insurance) Validate() error {
	if strings.TrimSpace(i.Provider) == "" {
		return fmt.Errorf("insurance provider is required")
	}
	if i.DiscountPct < 0 || i.DiscountPct > 100 {
		return fmt.Errorf("insurance discount_pct must be between 0 and 100")
	}
	return nil
}

// StaffRef is a weak reference to a staff member, resolved against the
// root aggregate's department collection rather than held as a pointer.
type StaffRef struct {
	Department string `json:"department"`
	StaffID    string `json:"staff_id"`
}

// Patient represents an admitted patient.
type Patient struct {
	PatientNumber int           `json:"patient_number"`
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	Condition     string        `json:"condition"`
	Status        PatientStatus `json:"status"`
	RoomNumber    *int          `json:"room_number,omitempty"`
	NextOfKin     string        `json:"next_of_kin,omitempty"`
	Insurance     *Insurance    `json:"insurance,omitempty"`
	DateOfDeath   *time.Time    `json:"date_of_death,omitempty"`

	// Owned exclusively; removed with the patient.
	Procedures []*Procedure `json:"procedures"`
	Bills      []*Billing   `json:"bills"`

	// Weak reference to the attending doctor, if any.
	AssignedDoctor *StaffRef `json:"assigned_doctor,omitempty"`
}

// Validate checks that the patient record is valid.
func (p *Patient) Validate() error {
	if p.PatientNumber < 1 {
		return fmt.Errorf("patient_number must be positive")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 {
		return fmt.Errorf("age must be non-negative")
	}
	if !p.Status.Valid() {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	if p.RoomNumber != nil && *p.RoomNumber < 1 {
		return fmt.Errorf("room_number must be positive")
	}
	if p.Insurance != nil {
		if err := p.Insurance.Validate(); err != nil {
			return err
		}
	}
	if p.Status == StatusDeceased && p.DateOfDeath == nil {
		return fmt.Errorf("deceased patients must have date_of_death")
	}
	return nil
}

// DiscountPct returns the current insurance discount, or 0 when uninsured.
func (p *Patient) DiscountPct() float64 {
	if p.Insurance == nil {
		return 0
	}
	return p.Insurance.DiscountPct
}

// UnbilledProcedures returns the procedures not yet covered by a bill,
// in insertion order.
func (p *Patient) UnbilledProcedures() []*Procedure {
	var out []*Procedure
	for _, proc := range p.Procedures {
		if !proc.Billed {
			out = append(out, proc)
		}
	}
	return out
}

// FindBill returns the bill with the given ID, or nil.
func (p *Patient) FindBill(id int) *Billing {
	for _, b := range p.Bills {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// OutstandingTotal sums the final amounts of unpaid bills.
func (p *Patient) OutstandingTotal() float64 {
	var total float64
	for _, b := range p.Bills {
		if !b.Paid {
			total += b.FinalAmount()
		}
	}
	return total
}
