package hospital

import (
	"fmt"
	"strings"

	"github.com/chpms/chpms/internal/models"
)

// AddProcedure records a clinical procedure for a patient, unbilled.
// Terminal patients accept no further procedures.
func (s *System) AddProcedure(patientKey, name string, cost float64) (*models.Procedure, error) {
	p, err := s.findPatient(patientKey)
	if err != nil {
		return nil, err
	}
	if p.Status.Terminal() {
		return nil, fmt.Errorf("add procedure: %w", ErrTerminalStatus)
	}
	if strings.TrimSpace(name) == "" {
		return nil, invalidf("procedure", "name must not be empty")
	}
	if cost < 0 {
		return nil, invalidf("cost", "must be non-negative, got %.2f", cost)
	}

	proc := &models.Procedure{Name: name, Cost: cost}
	p.Procedures = append(p.Procedures, proc)
	return proc, nil
}

// ListProcedures returns a patient's procedures in insertion order.
func (s *System) ListProcedures(patientKey string) ([]*models.Procedure, error) {
	p, err := s.findPatient(patientKey)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Procedure, len(p.Procedures))
	copy(out, p.Procedures)
	return out, nil
}

// GenerateBill creates a manual bill. The patient's current insurance
// discount is snapshotted into the bill; later insurance changes do not
// touch existing bills.
func (s *System) GenerateBill(patientKey string, amount float64, description string) (*models.Billing, error) {
	p, err := s.findPatient(patientKey)
	if err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, invalidf("amount", "must be non-negative, got %.2f", amount)
	}

	bill := s.newBill(p, amount, description)
	p.Bills = append(p.Bills, bill)
	return bill, nil
}

// GenerateBillsFromProcedures creates one bill per unbilled procedure, in
// procedure insertion order, marking each procedure billed. The caller may
// override a procedure's declared cost by name. Already-billed procedures
// are skipped, not errored, so repeated calls are idempotent.
func (s *System) GenerateBillsFromProcedures(patientKey string, costOverrides map[string]float64) ([]*models.Billing, error) {
	p, err := s.findPatient(patientKey)
	if err != nil {
		return nil, err
	}
	for name, cost := range costOverrides {
		if cost < 0 {
			return nil, invalidf("cost", "override for %q must be non-negative, got %.2f", name, cost)
		}
	}

	var created []*models.Billing
	for _, proc := range p.Procedures {
		if proc.Billed {
			continue
		}
		amount := proc.Cost
		if override, ok := costOverrides[proc.Name]; ok {
			amount = override
		}
		bill := s.newBill(p, amount, "Procedure: "+proc.Name)
		p.Bills = append(p.Bills, bill)
		proc.Billed = true
		created = append(created, bill)
	}
	return created, nil
}

// MarkBillPaid marks a bill paid. Marking an already-paid bill again is a
// no-op, not an error.
func (s *System) MarkBillPaid(patientKey string, billID int) error {
	p, err := s.findPatient(patientKey)
	if err != nil {
		return err
	}
	bill := p.FindBill(billID)
	if bill == nil {
		return fmt.Errorf("bill %d for patient %d: %w", billID, p.PatientNumber, ErrNotFound)
	}
	bill.Paid = true
	return nil
}

// ListBills returns a patient's bills in creation order.
func (s *System) ListBills(patientKey string) ([]*models.Billing, error) {
	p, err := s.findPatient(patientKey)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Billing, len(p.Bills))
	copy(out, p.Bills)
	return out, nil
}

// newBill builds a bill with the next per-patient ID and the current
// insurance discount snapshotted in.
func (s *System) newBill(p *models.Patient, amount float64, description string) *models.Billing {
	maxID := 0
	for _, b := range p.Bills {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return &models.Billing{
		ID:          maxID + 1,
		Description: description,
		BaseAmount:  amount,
		DiscountPct: p.DiscountPct(),
	}
}
