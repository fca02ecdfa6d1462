package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/chpms/chpms/internal/hospital"
	"github.com/chpms/chpms/internal/models"
)

// WriteExcel renders the full system state as an xlsx workbook with one
// sheet per record collection plus a summary sheet.
func WriteExcel(w io.Writer, hospitalName string, sys *hospital.System) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writePatientSheet(f, sys.Patients()); err != nil {
		return err
	}
	if err := writeStaffSheet(f, sys.Departments()); err != nil {
		return err
	}
	if err := writeBillingSheet(f, sys.Patients()); err != nil {
		return err
	}
	if err := writeSummarySheet(f, hospitalName, sys.GenerateReport()); err != nil {
		return err
	}

	// The workbook starts with a default "Sheet1"; drop it once the real
	// sheets exist.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex("Summary")
	if err != nil {
		return fmt.Errorf("locate summary sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writePatientSheet(f *excelize.File, patients []*models.Patient) error {
	const sheet = "Patients"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheet, err)
	}

	headers := []any{"Number", "Name", "Age", "Condition", "Status", "Room", "Next of Kin", "Insurance", "Discount %", "Attending Doctor", "Outstanding"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	for i, p := range patients {
		room := any("")
		if p.RoomNumber != nil {
			room = *p.RoomNumber
		}
		insurer := ""
		if p.Insurance != nil {
			insurer = p.Insurance.Provider
		}
		doctor := ""
		if p.AssignedDoctor != nil {
			doctor = fmt.Sprintf("%s (%s)", p.AssignedDoctor.StaffID, p.AssignedDoctor.Department)
		}
		row := []any{
			p.PatientNumber, p.Name, p.Age, p.Condition, p.Status.String(),
			room, p.NextOfKin, insurer, p.DiscountPct(), doctor, p.OutstandingTotal(),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func writeStaffSheet(f *excelize.File, departments []*models.Department) error {
	const sheet = "Staff"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheet, err)
	}

	headers := []any{"Department", "Staff ID", "Name", "Age", "Role", "Specialty"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	rowNum := 2
	for _, d := range departments {
		for _, member := range d.Staff {
			row := []any{d.Name, member.ID, member.Name, member.Age, member.Role.String(), member.Specialty}
			cell := fmt.Sprintf("A%d", rowNum)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
			}
			rowNum++
		}
	}
	return nil
}

func writeBillingSheet(f *excelize.File, patients []*models.Patient) error {
	const sheet = "Billing"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheet, err)
	}

	headers := []any{"Patient", "Bill ID", "Description", "Base Amount", "Discount %", "Final Amount", "Paid"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	rowNum := 2
	for _, p := range patients {
		for _, b := range p.Bills {
			row := []any{
				fmt.Sprintf("%d - %s", p.PatientNumber, p.Name),
				b.ID, b.Description, b.BaseAmount, b.DiscountPct, b.FinalAmount(), b.Paid,
			}
			cell := fmt.Sprintf("A%d", rowNum)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
			}
			rowNum++
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, hospitalName string, r *hospital.Report) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheet, err)
	}

	rows := [][]any{
		{hospitalName + " - System Report"},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05")},
		{},
		{"Total Patients", r.TotalPatients},
		{"Total Staff", r.TotalStaff},
		{"Total Doctors", r.TotalDoctors},
		{"Occupied Rooms", len(r.OccupiedRooms)},
		{"Next Patient Number", r.NextPatientNumber},
		{},
		{"Paid Bills", r.Billing.PaidCount},
		{"Paid Total", r.Billing.PaidTotal},
		{"Outstanding Bills", r.Billing.UnpaidCount},
		{"Outstanding Total", r.Billing.OutstandingTotal},
		{},
		{"Billed Procedures", r.Procedures.Billed},
		{"Unbilled Procedures", r.Procedures.Unbilled},
	}
	for _, status := range statusOrder {
		if count := r.PatientsByStatus[status]; count > 0 {
			rows = append(rows, []any{"Patients " + status.String(), count})
		}
	}

	for i := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
