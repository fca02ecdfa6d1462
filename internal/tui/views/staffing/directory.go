// Package staffing provides TUI views for department and staff management.
package staffing

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chpms/chpms/internal/hospital"
	"github.com/chpms/chpms/internal/models"
	"github.com/chpms/chpms/internal/tui/components"
)

// directoryEntry pairs a staff member with their department for the flat
// directory table.
type directoryEntry struct {
	department string
	member     *models.Staff
}

// DirectoryView displays all staff across departments.
type DirectoryView struct {
	system  *hospital.System
	table   *components.Table
	entries []directoryEntry
}

// NewDirectoryView creates a new staff directory view.
func NewDirectoryView(system *hospital.System) *DirectoryView {
	columns := []components.Column{
		{Title: "Department", Width: 18},
		{Title: "Name", Width: 20},
		{Title: "Age", Width: 4, Align: lipgloss.Right},
		{Title: "Role", Width: 8},
		{Title: "Specialty", Width: 20},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(15)
	table.Focus(true)

	return &DirectoryView{
		system: system,
		table:  table,
	}
}

// Load refreshes the directory from the records core.
func (v *DirectoryView) Load() {
	v.entries = v.entries[:0]
	for _, d := range v.system.Departments() {
		for _, member := range d.Staff {
			v.entries = append(v.entries, directoryEntry{department: d.Name, member: member})
		}
	}

	rows := make([][]string, len(v.entries))
	for i, e := range v.entries {
		rows[i] = []string{
			e.department,
			e.member.Name,
			fmt.Sprintf("%d", e.member.Age),
			e.member.Role.String(),
			e.member.Specialty,
		}
	}
	v.table.SetRows(rows)
}

// SetVisibleRows sets the number of visible table rows.
func (v *DirectoryView) SetVisibleRows(n int) {
	v.table.SetVisibleRows(n)
}

// MoveUp moves the selection up.
func (v *DirectoryView) MoveUp() { v.table.MoveUp() }

// MoveDown moves the selection down.
func (v *DirectoryView) MoveDown() { v.table.MoveDown() }

// PageUp moves up one page.
func (v *DirectoryView) PageUp() { v.table.PageUp() }

// PageDown moves down one page.
func (v *DirectoryView) PageDown() { v.table.PageDown() }

// Selected returns the selected staff member and their department.
func (v *DirectoryView) Selected() (department string, member *models.Staff) {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.entries) {
		return v.entries[idx].department, v.entries[idx].member
	}
	return "", nil
}

// Render renders the directory view.
func (v *DirectoryView) Render(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("═══ STAFF DIRECTORY ═══"))
	b.WriteString("\n\n")

	departments := v.system.Departments()
	if len(departments) == 0 {
		b.WriteString(labelStyle.Render("No departments. Press 'n' to create one."))
		b.WriteString("\n")
	} else {
		names := make([]string, len(departments))
		for i, d := range departments {
			names[i] = fmt.Sprintf("%s (%d)", d.Name, len(d.Staff))
		}
		b.WriteString(labelStyle.Render("Departments: "))
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n\n")
	}

	if v.table.Empty() {
		b.WriteString(labelStyle.Render("No staff on record."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	if width > 0 && width < 60 {
		b.WriteString(helpStyle.Render("↑↓:Nav  a:Hire  n:New Dept"))
	} else {
		b.WriteString(helpStyle.Render("Up/Down:Select  a:Hire  e:Edit  x:Remove  n:New Dept  X:Remove Dept  p:Assign Patient"))
	}

	return b.String()
}
