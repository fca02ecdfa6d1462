// Package patients provides TUI views for patient record management.
package patients

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chpms/chpms/internal/hospital"
	"github.com/chpms/chpms/internal/models"
	"github.com/chpms/chpms/internal/tui/components"
)

// RosterView displays the patient roster.
type RosterView struct {
	system   *hospital.System
	table    *components.Table
	patients []*models.Patient
	search   string
}

// NewRosterView creates a new roster view.
func NewRosterView(system *hospital.System) *RosterView {
	columns := []components.Column{
		{Title: "No.", Width: 5, Align: lipgloss.Right},
		{Title: "Name", Width: 20},
		{Title: "Age", Width: 4, Align: lipgloss.Right},
		{Title: "Condition", Width: 18},
		{Title: "Status", Width: 10},
		{Title: "Room", Width: 5, Align: lipgloss.Right},
		{Title: "Doctor", Width: 16},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(15)
	table.Focus(true)

	return &RosterView{
		system: system,
		table:  table,
	}
}

// Load refreshes the roster from the records core.
func (v *RosterView) Load() {
	all := v.system.Patients()
	if v.search != "" {
		filtered := all[:0:0]
		needle := strings.ToLower(v.search)
		for _, p := range all {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				filtered = append(filtered, p)
			}
		}
		all = filtered
	}
	v.patients = all

	rows := make([][]string, len(all))
	for i, p := range all {
		room := "-"
		if p.RoomNumber != nil {
			room = fmt.Sprintf("%d", *p.RoomNumber)
		}
		doctor := "-"
		if d, err := v.system.AttendingDoctor(fmt.Sprintf("%d", p.PatientNumber)); err == nil && d != nil {
			doctor = d.Name
		}
		rows[i] = []string{
			fmt.Sprintf("%d", p.PatientNumber),
			p.Name,
			fmt.Sprintf("%d", p.Age),
			p.Condition,
			p.Status.String(),
			room,
			doctor,
		}
	}
	v.table.SetRows(rows)
}

// SetSearch sets the name filter.
func (v *RosterView) SetSearch(term string) {
	v.search = term
}

// Search returns the current name filter.
func (v *RosterView) Search() string {
	return v.search
}

// SetVisibleRows sets the number of visible table rows.
func (v *RosterView) SetVisibleRows(n int) {
	v.table.SetVisibleRows(n)
}

// MoveUp moves the selection up.
func (v *RosterView) MoveUp() { v.table.MoveUp() }

// MoveDown moves the selection down.
func (v *RosterView) MoveDown() { v.table.MoveDown() }

// PageUp moves up one page.
func (v *RosterView) PageUp() { v.table.PageUp() }

// PageDown moves down one page.
func (v *RosterView) PageDown() { v.table.PageDown() }

// SelectedPatient returns the currently selected patient.
func (v *RosterView) SelectedPatient() *models.Patient {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.patients) {
		return v.patients[idx]
	}
	return nil
}

// Render renders the roster view.
func (v *RosterView) Render(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("═══ PATIENT ROSTER ═══"))
	b.WriteString("\n\n")

	if v.search != "" {
		b.WriteString(labelStyle.Render("Search: "))
		b.WriteString(valueStyle.Render(v.search))
		b.WriteString("\n\n")
	}

	if v.table.Empty() {
		b.WriteString(labelStyle.Render("No patients found."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	if width > 0 && width < 60 {
		b.WriteString(helpStyle.Render("↑↓:Nav  Enter:View  a:Add  /:Search"))
	} else {
		b.WriteString(helpStyle.Render("Up/Down:Select  Enter:Details  a:Add  e:Edit  d:Discharge  x:Remove  /:Search"))
	}

	return b.String()
}

// RenderDetail renders the detail view for a patient.
func (v *RosterView) RenderDetail(p *models.Patient) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(18)

	if p == nil {
		return labelStyle.Render("No patient selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("═══ PATIENT RECORD ═══"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("IDENTITY"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Patient Number:") + " " + valueStyle.Render(fmt.Sprintf("%d", p.PatientNumber)) + "\n")
	b.WriteString(labelStyle.Render("Name:") + " " + valueStyle.Render(p.Name) + "\n")
	b.WriteString(labelStyle.Render("Age:") + " " + valueStyle.Render(fmt.Sprintf("%d", p.Age)) + "\n")
	if p.NextOfKin != "" {
		b.WriteString(labelStyle.Render("Next of Kin:") + " " + valueStyle.Render(p.NextOfKin) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("CLINICAL"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Condition:") + " " + valueStyle.Render(p.Condition) + "\n")
	b.WriteString(labelStyle.Render("Status:") + " " + valueStyle.Render(p.Status.String()) + "\n")
	if p.RoomNumber != nil {
		b.WriteString(labelStyle.Render("Room:") + " " + valueStyle.Render(fmt.Sprintf("%d", *p.RoomNumber)) + "\n")
	}
	if p.DateOfDeath != nil {
		b.WriteString(labelStyle.Render("Date of Death:") + " " + valueStyle.Render(p.DateOfDeath.Format("2006-01-02")) + "\n")
	}
	if d, err := v.system.AttendingDoctor(fmt.Sprintf("%d", p.PatientNumber)); err == nil && d != nil {
		b.WriteString(labelStyle.Render("Attending Doctor:") + " " + valueStyle.Render(d.Name) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("INSURANCE"))
	b.WriteString("\n")
	if p.Insurance != nil {
		b.WriteString(labelStyle.Render("Provider:") + " " + valueStyle.Render(p.Insurance.Provider) + "\n")
		b.WriteString(labelStyle.Render("Discount:") + " " + valueStyle.Render(fmt.Sprintf("%.1f%%", p.Insurance.DiscountPct)) + "\n")
	} else {
		b.WriteString(labelStyle.Render("Provider:") + " " + valueStyle.Render("none") + "\n")
	}
	b.WriteString("\n")

	if len(p.Procedures) > 0 {
		b.WriteString(sectionStyle.Render("PROCEDURES"))
		b.WriteString("\n")
		for _, proc := range p.Procedures {
			billed := "unbilled"
			if proc.Billed {
				billed = "billed"
			}
			b.WriteString(fmt.Sprintf("  %s ($%.2f, %s)\n", proc.Name, proc.Cost, billed))
		}
		b.WriteString("\n")
	}

	if len(p.Bills) > 0 {
		b.WriteString(sectionStyle.Render("BILLS"))
		b.WriteString("\n")
		for _, bill := range p.Bills {
			state := "UNPAID"
			if bill.Paid {
				state = "PAID"
			}
			b.WriteString(fmt.Sprintf("  #%d %s: $%.2f (%s)\n", bill.ID, bill.Description, bill.FinalAmount(), state))
		}
		b.WriteString(labelStyle.Render("Outstanding:") + " " + valueStyle.Render(fmt.Sprintf("$%.2f", p.OutstandingTotal())) + "\n")
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("Esc:Back  e:Edit  r:Room  s:Status  d:Discharge  t:Death"))

	return b.String()
}
