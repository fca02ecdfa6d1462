// Package export renders hospital reports into the output directory.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/chpms/chpms/internal/hospital"
	"github.com/chpms/chpms/internal/models"
)

// statusOrder fixes the section ordering for status breakdowns.
var statusOrder = []models.PatientStatus{
	models.StatusNormal,
	models.StatusSurgery,
	models.StatusEmergency,
	models.StatusDischarged,
	models.StatusDeceased,
}

// WriteText renders the report as a plain-text summary.
func WriteText(w io.Writer, hospitalName string, r *hospital.Report) error {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 40)

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%s - SYSTEM REPORT\n", strings.ToUpper(hospitalName))
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("PATIENTS BY STATUS:\n" + sub + "\n")
	if r.TotalPatients == 0 {
		b.WriteString("No patients in the system\n")
	} else {
		for _, status := range statusOrder {
			if count := r.PatientsByStatus[status]; count > 0 {
				fmt.Fprintf(&b, "%-12s %d\n", status.String()+":", count)
			}
		}
	}
	b.WriteString("\n")

	b.WriteString("ROOM OCCUPANCY:\n" + sub + "\n")
	if len(r.OccupiedRooms) == 0 {
		b.WriteString("All rooms are empty\n")
	} else {
		for _, room := range r.OccupiedRooms {
			fmt.Fprintf(&b, "Room %d: %s (patient %d)\n", room.Room, room.PatientName, room.PatientNumber)
		}
	}
	b.WriteString("\n")

	b.WriteString("STAFF BY DEPARTMENT:\n" + sub + "\n")
	if len(r.Departments) == 0 {
		b.WriteString("No departments in the system\n")
	} else {
		for _, d := range r.Departments {
			fmt.Fprintf(&b, "%s: %d doctors, %d nurses, %d other (%d total)\n",
				d.Name, d.Doctors, d.Nurses, d.Other, d.Total())
		}
	}
	b.WriteString("\n")

	b.WriteString("BILLING:\n" + sub + "\n")
	fmt.Fprintf(&b, "Paid bills:        %d ($%.2f)\n", r.Billing.PaidCount, r.Billing.PaidTotal)
	fmt.Fprintf(&b, "Outstanding bills: %d ($%.2f)\n", r.Billing.UnpaidCount, r.Billing.OutstandingTotal)
	b.WriteString("\n")

	b.WriteString("STATISTICS:\n" + sub + "\n")
	fmt.Fprintf(&b, "Total Patients:       %d\n", r.TotalPatients)
	fmt.Fprintf(&b, "Total Staff:          %d\n", r.TotalStaff)
	fmt.Fprintf(&b, "Total Doctors:        %d\n", r.TotalDoctors)
	fmt.Fprintf(&b, "Occupied Rooms:       %d\n", len(r.OccupiedRooms))
	fmt.Fprintf(&b, "Billed Procedures:    %d\n", r.Procedures.Billed)
	fmt.Fprintf(&b, "Unbilled Procedures:  %d\n", r.Procedures.Unbilled)
	fmt.Fprintf(&b, "Next Patient Number:  %d\n", r.NextPatientNumber)

	_, err := io.WriteString(w, b.String())
	return err
}
