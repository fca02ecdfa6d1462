package models

import (
	"testing"
	"time"
)

func TestPatientStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status PatientStatus
		want   bool
	}{
		{"Normal is valid", StatusNormal, true},
		{"Surgery is valid", StatusSurgery, true},
		{"Emergency is valid", StatusEmergency, true},
		{"Discharged is valid", StatusDischarged, true},
		{"Deceased is valid", StatusDeceased, true},
		{"Empty string is invalid", PatientStatus(""), false},
		{"Unknown value is invalid", PatientStatus("recovering"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("PatientStatus.Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPatientStatus_Terminal(t *testing.T) {
	tests := []struct {
		name   string
		status PatientStatus
		want   bool
	}{
		{"Normal is not terminal", StatusNormal, false},
		{"Surgery is not terminal", StatusSurgery, false},
		{"Emergency is not terminal", StatusEmergency, false},
		{"Discharged is terminal", StatusDischarged, true},
		{"Deceased is terminal", StatusDeceased, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("PatientStatus.Terminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPatientStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from PatientStatus
		to   PatientStatus
		want bool
	}{
		{"normal to surgery", StatusNormal, StatusSurgery, true},
		{"normal to emergency", StatusNormal, StatusEmergency, true},
		{"normal to discharged", StatusNormal, StatusDischarged, true},
		{"normal to deceased", StatusNormal, StatusDeceased, true},
		{"surgery back to normal", StatusSurgery, StatusNormal, true},
		{"emergency back to normal", StatusEmergency, StatusNormal, true},
		{"surgery to deceased", StatusSurgery, StatusDeceased, true},
		{"emergency to discharged", StatusEmergency, StatusDischarged, true},
		{"surgery directly to emergency", StatusSurgery, StatusEmergency, false},
		{"emergency directly to surgery", StatusEmergency, StatusSurgery, false},
		{"discharged cannot change", StatusDischarged, StatusNormal, false},
		{"discharged cannot die", StatusDischarged, StatusDeceased, false},
		{"deceased cannot change", StatusDeceased, StatusNormal, false},
		{"deceased cannot discharge", StatusDeceased, StatusDischarged, false},
		{"unknown source rejected", PatientStatus("bogus"), StatusNormal, false},
		{"unknown target rejected", StatusNormal, PatientStatus("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestInsurance_Validate(t *testing.T) {
	tests := []struct {
		name      string
		insurance Insurance
		wantErr   bool
	}{
		{"valid coverage", Insurance{Provider: "MedShield", DiscountPct: 20}, false},
		{"zero discount is valid", Insurance{Provider: "MedShield"}, false},
		{"full discount is valid", Insurance{Provider: "MedShield", DiscountPct: 100}, false},
		{"missing provider", Insurance{DiscountPct: 20}, true},
		{"blank provider", Insurance{Provider: "   ", DiscountPct: 20}, true},
		{"negative discount", Insurance{Provider: "MedShield", DiscountPct: -1}, true},
		{"discount over 100", Insurance{Provider: "MedShield", DiscountPct: 101}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.insurance.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Insurance.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPatient_Validate(t *testing.T) {
	room := 12
	badRoom := 0
	death := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		patient Patient
		wantErr bool
	}{
		{
			"valid patient",
			Patient{PatientNumber: 1, Name: "Alice Moreau", Age: 40, Status: StatusNormal},
			false,
		},
		{
			"valid with room",
			Patient{PatientNumber: 2, Name: "Ben Okafor", Age: 55, Status: StatusSurgery, RoomNumber: &room},
			false,
		},
		{
			"zero patient number",
			Patient{Name: "Alice Moreau", Age: 40, Status: StatusNormal},
			true,
		},
		{
			"blank name",
			Patient{PatientNumber: 1, Name: "  ", Age: 40, Status: StatusNormal},
			true,
		},
		{
			"negative age",
			Patient{PatientNumber: 1, Name: "Alice Moreau", Age: -1, Status: StatusNormal},
			true,
		},
		{
			"invalid status",
			Patient{PatientNumber: 1, Name: "Alice Moreau", Age: 40, Status: "resting"},
			true,
		},
		{
			"non-positive room",
			Patient{PatientNumber: 1, Name: "Alice Moreau", Age: 40, Status: StatusNormal, RoomNumber: &badRoom},
			true,
		},
		{
			"deceased without date of death",
			Patient{PatientNumber: 1, Name: "Alice Moreau", Age: 40, Status: StatusDeceased},
			true,
		},
		{
			"deceased with date of death",
			Patient{PatientNumber: 1, Name: "Alice Moreau", Age: 40, Status: StatusDeceased, DateOfDeath: &death},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patient.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Patient.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPatient_DiscountPct(t *testing.T) {
	uninsured := Patient{PatientNumber: 1, Name: "Alice Moreau", Age: 40, Status: StatusNormal}
	if got := uninsured.DiscountPct(); got != 0 {
		t.Errorf("uninsured DiscountPct() = %v, want 0", got)
	}

	insured := uninsured
	insured.Insurance = &Insurance{Provider: "MedShield", DiscountPct: 25}
	if got := insured.DiscountPct(); got != 25 {
		t.Errorf("insured DiscountPct() = %v, want 25", got)
	}
}

func TestPatient_OutstandingTotal(t *testing.T) {
	p := Patient{
		PatientNumber: 1,
		Name:          "Alice Moreau",
		Age:           40,
		Status:        StatusNormal,
		Bills: []*Billing{
			{ID: 1, BaseAmount: 100, DiscountPct: 0, Paid: true},
			{ID: 2, BaseAmount: 200, DiscountPct: 50},
			{ID: 3, BaseAmount: 40, DiscountPct: 0},
		},
	}

	if got := p.OutstandingTotal(); got != 140 {
		t.Errorf("OutstandingTotal() = %v, want 140", got)
	}
}

func TestPatient_UnbilledProcedures(t *testing.T) {
	p := Patient{
		PatientNumber: 1,
		Name:          "Alice Moreau",
		Age:           40,
		Status:        StatusNormal,
		Procedures: []*Procedure{
			{Name: "X-Ray", Cost: 120, Billed: true},
			{Name: "Blood Panel", Cost: 45},
			{Name: "MRI", Cost: 900},
		},
	}

	got := p.UnbilledProcedures()
	if len(got) != 2 {
		t.Fatalf("UnbilledProcedures() returned %d procedures, want 2", len(got))
	}
	if got[0].Name != "Blood Panel" || got[1].Name != "MRI" {
		t.Errorf("UnbilledProcedures() order = %q, %q; want Blood Panel, MRI", got[0].Name, got[1].Name)
	}
}

func TestPatient_FindBill(t *testing.T) {
	p := Patient{
		Bills: []*Billing{
			{ID: 1, BaseAmount: 100},
			{ID: 7, BaseAmount: 50},
		},
	}

	if b := p.FindBill(7); b == nil || b.BaseAmount != 50 {
		t.Errorf("FindBill(7) = %+v, want bill with BaseAmount 50", b)
	}
	if b := p.FindBill(99); b != nil {
		t.Errorf("FindBill(99) = %+v, want nil", b)
	}
}
