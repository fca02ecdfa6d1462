package hospital

import (
	"time"

	"github.com/chpms/chpms/internal/models"
)

// Report is the structured system summary. Rendering to text or a
// spreadsheet is the caller's concern.
type Report struct {
	GeneratedAt       time.Time
	TotalPatients     int
	PatientsByStatus  map[models.PatientStatus]int
	OccupiedRooms     []RoomOccupancy
	Departments       []DepartmentSummary
	TotalStaff        int
	TotalDoctors      int
	Billing           BillingSummary
	Procedures        ProcedureSummary
	NextPatientNumber int
}

// DepartmentSummary counts a department's staff by role.
type DepartmentSummary struct {
	Name    string
	Doctors int
	Nurses  int
	Other   int
}

// Total returns the department's staff head count.
func (d DepartmentSummary) Total() int {
	return d.Doctors + d.Nurses + d.Other
}

// BillingSummary aggregates bill totals using insurance-adjusted amounts.
type BillingSummary struct {
	PaidCount        int
	UnpaidCount      int
	PaidTotal        float64
	OutstandingTotal float64
}

// ProcedureSummary counts procedures by billing state.
type ProcedureSummary struct {
	Billed   int
	Unbilled int
}

// GenerateReport aggregates the current state into a Report. Read-only.
func (s *System) GenerateReport() *Report {
	r := &Report{
		GeneratedAt:       time.Now(),
		TotalPatients:     len(s.patients),
		PatientsByStatus:  make(map[models.PatientStatus]int),
		OccupiedRooms:     s.Rooms(),
		NextPatientNumber: s.nextPatientNumber,
	}

	for _, n := range s.patientOrder {
		p := s.patients[n]
		r.PatientsByStatus[p.Status]++
		for _, proc := range p.Procedures {
			if proc.Billed {
				r.Procedures.Billed++
			} else {
				r.Procedures.Unbilled++
			}
		}
		for _, b := range p.Bills {
			if b.Paid {
				r.Billing.PaidCount++
				r.Billing.PaidTotal += b.FinalAmount()
			} else {
				r.Billing.UnpaidCount++
				r.Billing.OutstandingTotal += b.FinalAmount()
			}
		}
	}

	for _, name := range s.deptOrder {
		d := s.departments[name]
		sum := DepartmentSummary{Name: name}
		for _, member := range d.Staff {
			switch member.Role {
			case models.RoleDoctor:
				sum.Doctors++
			case models.RoleNurse:
				sum.Nurses++
			default:
				sum.Other++
			}
		}
		r.Departments = append(r.Departments, sum)
		r.TotalStaff += sum.Total()
		r.TotalDoctors += sum.Doctors
	}

	return r
}
