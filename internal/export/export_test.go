package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/chpms/chpms/internal/hospital"
	"github.com/chpms/chpms/internal/models"
)

func buildSystem(t *testing.T) *hospital.System {
	t.Helper()
	sys := hospital.NewSystem()

	_, err := sys.AddDepartment("Cardiology")
	require.NoError(t, err)
	_, err = sys.AddStaff("Cardiology", hospital.AddStaffInput{
		Name: "Dana Ruiz", Age: 45, Role: models.RoleDoctor, Specialty: "Electrophysiology",
	})
	require.NoError(t, err)
	_, err = sys.AddStaff("Cardiology", hospital.AddStaffInput{
		Name: "Sam Lee", Age: 38, Role: models.RoleNurse,
	})
	require.NoError(t, err)

	room := 12
	_, err = sys.AddPatient(hospital.AddPatientInput{
		Name: "Alice Moreau", Age: 40, Condition: "Arrhythmia", Room: &room,
		Insurance: &models.Insurance{Provider: "MedShield", DiscountPct: 20},
	})
	require.NoError(t, err)
	_, err = sys.AddProcedure("1", "Ablation", 2500)
	require.NoError(t, err)
	_, err = sys.GenerateBillsFromProcedures("1", nil)
	require.NoError(t, err)
	require.NoError(t, sys.MarkBillPaid("1", 1))

	_, err = sys.AddPatient(hospital.AddPatientInput{Name: "Ben Okafor", Age: 55, Condition: "Observation"})
	require.NoError(t, err)
	_, err = sys.GenerateBill("2", 300, "Consultation")
	require.NoError(t, err)

	return sys
}

func TestWriteText(t *testing.T) {
	sys := buildSystem(t)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, "Capital Hospital", sys.GenerateReport()))
	out := buf.String()

	assert.Contains(t, out, "CAPITAL HOSPITAL - SYSTEM REPORT")
	for _, section := range []string{
		"PATIENTS BY STATUS:",
		"ROOM OCCUPANCY:",
		"STAFF BY DEPARTMENT:",
		"BILLING:",
		"STATISTICS:",
	} {
		assert.Contains(t, out, section)
	}

	assert.Contains(t, out, "Room 12: Alice Moreau (patient 1)")
	assert.Contains(t, out, "Cardiology: 1 doctors, 1 nurses, 0 other (2 total)")
	// Bill 1: 2500 at 20% = 2000 paid; bill for patient 2: 300 outstanding.
	assert.Contains(t, out, "Paid bills:        1 ($2000.00)")
	assert.Contains(t, out, "Outstanding bills: 1 ($300.00)")
	assert.Contains(t, out, "Next Patient Number:  3")
}

func TestWriteText_EmptySystem(t *testing.T) {
	sys := hospital.NewSystem()

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, "Capital Hospital", sys.GenerateReport()))
	out := buf.String()

	assert.Contains(t, out, "No patients in the system")
	assert.Contains(t, out, "All rooms are empty")
	assert.Contains(t, out, "No departments in the system")
}

func TestWriteExcel(t *testing.T) {
	sys := buildSystem(t)

	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, "Capital Hospital", sys))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Patients", "Staff", "Billing", "Summary"}, f.GetSheetList())

	name, err := f.GetCellValue("Patients", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Alice Moreau", name)
	status, err := f.GetCellValue("Patients", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Normal", status)

	staffName, err := f.GetCellValue("Staff", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Dana Ruiz", staffName)
	role, err := f.GetCellValue("Staff", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Doctor", role)

	desc, err := f.GetCellValue("Billing", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Procedure: Ablation", desc)

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Capital Hospital - System Report", title)
}

func TestWriteReports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	sys := buildSystem(t)

	textPath, excelPath, err := WriteReports(dir, "Capital Hospital", sys)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, TextReportName), textPath)
	assert.Equal(t, filepath.Join(dir, ExcelReportName), excelPath)

	data, err := os.ReadFile(textPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "CAPITAL HOSPITAL"))

	f, err := excelize.OpenFile(excelPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")
}
