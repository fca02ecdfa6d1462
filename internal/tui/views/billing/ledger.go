// Package billing provides TUI views for procedures and bills.
package billing

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chpms/chpms/internal/hospital"
	"github.com/chpms/chpms/internal/models"
	"github.com/chpms/chpms/internal/tui/components"
)

// ledgerEntry pairs a bill with its owning patient.
type ledgerEntry struct {
	patient *models.Patient
	bill    *models.Billing
}

// LedgerView displays all bills across patients.
type LedgerView struct {
	system  *hospital.System
	table   *components.Table
	entries []ledgerEntry

	unbilled int
}

// NewLedgerView creates a new billing ledger view.
func NewLedgerView(system *hospital.System) *LedgerView {
	columns := []components.Column{
		{Title: "Patient", Width: 22},
		{Title: "Bill", Width: 5, Align: lipgloss.Right},
		{Title: "Description", Width: 24},
		{Title: "Base", Width: 10, Align: lipgloss.Right},
		{Title: "Disc%", Width: 6, Align: lipgloss.Right},
		{Title: "Due", Width: 10, Align: lipgloss.Right},
		{Title: "State", Width: 6},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(15)
	table.Focus(true)

	return &LedgerView{
		system: system,
		table:  table,
	}
}

// Load refreshes the ledger from the records core.
func (v *LedgerView) Load() {
	v.entries = v.entries[:0]
	v.unbilled = 0
	for _, p := range v.system.Patients() {
		for _, proc := range p.Procedures {
			if !proc.Billed {
				v.unbilled++
			}
		}
		for _, b := range p.Bills {
			v.entries = append(v.entries, ledgerEntry{patient: p, bill: b})
		}
	}

	rows := make([][]string, len(v.entries))
	for i, e := range v.entries {
		state := "UNPAID"
		if e.bill.Paid {
			state = "PAID"
		}
		rows[i] = []string{
			fmt.Sprintf("%d - %s", e.patient.PatientNumber, e.patient.Name),
			fmt.Sprintf("%d", e.bill.ID),
			e.bill.Description,
			fmt.Sprintf("%.2f", e.bill.BaseAmount),
			fmt.Sprintf("%.1f", e.bill.DiscountPct),
			fmt.Sprintf("%.2f", e.bill.FinalAmount()),
			state,
		}
	}
	v.table.SetRows(rows)
}

// SetVisibleRows sets the number of visible table rows.
func (v *LedgerView) SetVisibleRows(n int) {
	v.table.SetVisibleRows(n)
}

// MoveUp moves the selection up.
func (v *LedgerView) MoveUp() { v.table.MoveUp() }

// MoveDown moves the selection down.
func (v *LedgerView) MoveDown() { v.table.MoveDown() }

// PageUp moves up one page.
func (v *LedgerView) PageUp() { v.table.PageUp() }

// PageDown moves down one page.
func (v *LedgerView) PageDown() { v.table.PageDown() }

// Selected returns the selected bill and its owning patient.
func (v *LedgerView) Selected() (patient *models.Patient, bill *models.Billing) {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.entries) {
		return v.entries[idx].patient, v.entries[idx].bill
	}
	return nil, nil
}

// Render renders the ledger view.
func (v *LedgerView) Render(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("═══ BILLING LEDGER ═══"))
	b.WriteString("\n\n")

	var outstanding float64
	for _, e := range v.entries {
		if !e.bill.Paid {
			outstanding += e.bill.FinalAmount()
		}
	}
	b.WriteString(labelStyle.Render("Outstanding: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("$%.2f", outstanding)))
	if v.unbilled > 0 {
		b.WriteString("   ")
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d unbilled procedure(s)", v.unbilled)))
	}
	b.WriteString("\n\n")

	if v.table.Empty() {
		b.WriteString(labelStyle.Render("No bills on record."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	if width > 0 && width < 60 {
		b.WriteString(helpStyle.Render("↑↓:Nav  p:Pay  a:Procedure  g:Bill"))
	} else {
		b.WriteString(helpStyle.Render("Up/Down:Select  p:Mark Paid  a:Add Procedure  g:New Bill  G:Bill Procedures"))
	}

	return b.String()
}
