package hospital

import (
	"errors"
	"testing"
	"time"

	"github.com/chpms/chpms/internal/models"
)

func TestAddPatient_Validation(t *testing.T) {
	room := 5
	badRoom := -2

	tests := []struct {
		name  string
		input AddPatientInput
	}{
		{"blank name", AddPatientInput{Name: "  ", Age: 40}},
		{"negative age", AddPatientInput{Name: "Alice Moreau", Age: -1}},
		{"non-positive room", AddPatientInput{Name: "Alice Moreau", Age: 40, Room: &badRoom}},
		{"bad insurance", AddPatientInput{Name: "Alice Moreau", Age: 40, Insurance: &models.Insurance{Provider: "MedShield", DiscountPct: 150}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSystem(t)
			if _, err := s.AddPatient(tt.input); !IsValidation(err) {
				t.Errorf("AddPatient() error = %v, want validation error", err)
			}
			if got := s.NextPatientNumber(); got != 1 {
				t.Errorf("counter advanced to %d on rejected admission", got)
			}
		})
	}

	t.Run("occupied room", func(t *testing.T) {
		s := newTestSystem(t)
		if _, err := s.AddPatient(AddPatientInput{Name: "Alice Moreau", Age: 40, Room: &room}); err != nil {
			t.Fatal(err)
		}
		sameRoom := room
		if _, err := s.AddPatient(AddPatientInput{Name: "Ben Okafor", Age: 55, Room: &sameRoom}); !IsValidation(err) {
			t.Errorf("AddPatient() into occupied room error = %v, want validation error", err)
		}
	})
}

func TestEditPatient(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	intPtr := func(n int) *int { return &n }

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		s := newTestSystem(t)
		p, err := s.AddPatient(AddPatientInput{Name: "Alice Moreau", Age: 40, Condition: "Pneumonia", NextOfKin: "Marc Moreau"})
		if err != nil {
			t.Fatal(err)
		}

		if err := s.EditPatient("1", PatientUpdate{Age: intPtr(41)}); err != nil {
			t.Fatalf("EditPatient: %v", err)
		}
		if p.Age != 41 {
			t.Errorf("age = %d, want 41", p.Age)
		}
		if p.Name != "Alice Moreau" || p.Condition != "Pneumonia" || p.NextOfKin != "Marc Moreau" {
			t.Errorf("untouched fields changed: %+v", p)
		}
	})

	t.Run("rejected update changes nothing", func(t *testing.T) {
		s := newTestSystem(t)
		p, err := s.AddPatient(AddPatientInput{Name: "Alice Moreau", Age: 40})
		if err != nil {
			t.Fatal(err)
		}

		err = s.EditPatient("1", PatientUpdate{Name: strPtr("Alicia Moreau"), Age: intPtr(-5)})
		if !IsValidation(err) {
			t.Fatalf("EditPatient error = %v, want validation error", err)
		}
		if p.Name != "Alice Moreau" || p.Age != 40 {
			t.Errorf("partial apply on rejection: name=%q age=%d", p.Name, p.Age)
		}
	})

	t.Run("set and clear insurance conflict", func(t *testing.T) {
		s := newTestSystem(t)
		if _, err := s.AddPatient(AddPatientInput{Name: "Alice Moreau", Age: 40}); err != nil {
			t.Fatal(err)
		}

		err := s.EditPatient("1", PatientUpdate{
			Insurance:      &models.Insurance{Provider: "MedShield", DiscountPct: 20},
			ClearInsurance: true,
		})
		if !IsValidation(err) {
			t.Errorf("EditPatient error = %v, want validation error", err)
		}
	})

	t.Run("clear insurance", func(t *testing.T) {
		s := newTestSystem(t)
		p, err := s.AddPatient(AddPatientInput{
			Name: "Alice Moreau", Age: 40,
			Insurance: &models.Insurance{Provider: "MedShield", DiscountPct: 20},
		})
		if err != nil {
			t.Fatal(err)
		}

		if err := s.EditPatient("1", PatientUpdate{ClearInsurance: true}); err != nil {
			t.Fatalf("EditPatient: %v", err)
		}
		if p.Insurance != nil {
			t.Errorf("insurance not cleared: %+v", p.Insurance)
		}
	})

	t.Run("unknown patient", func(t *testing.T) {
		s := newTestSystem(t)
		if err := s.EditPatient("99", PatientUpdate{Age: intPtr(50)}); !errors.Is(err, ErrNotFound) {
			t.Errorf("EditPatient(99) error = %v, want ErrNotFound", err)
		}
	})
}

func TestSetStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    models.PatientStatus
		to      models.PatientStatus
		wantErr error
	}{
		{"normal to surgery", models.StatusNormal, models.StatusSurgery, nil},
		{"normal to emergency", models.StatusNormal, models.StatusEmergency, nil},
		{"surgery back to normal", models.StatusSurgery, models.StatusNormal, nil},
		{"surgery to emergency rejected", models.StatusSurgery, models.StatusEmergency, ErrInvalidTransition},
		{"emergency to surgery rejected", models.StatusEmergency, models.StatusSurgery, ErrInvalidTransition},
		{"discharged is final", models.StatusDischarged, models.StatusNormal, ErrInvalidTransition},
		{"deceased is final", models.StatusDeceased, models.StatusNormal, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSystem(t)
			p := mustAddPatient(t, s, "Alice Moreau", 40)
			p.Status = tt.from
			if tt.from == models.StatusDeceased {
				death := time.Now()
				p.DateOfDeath = &death
			}

			err := s.SetStatus("1", tt.to)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("SetStatus: %v", err)
				}
				if p.Status != tt.to {
					t.Errorf("status = %s, want %s", p.Status, tt.to)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SetStatus error = %v, want %v", err, tt.wantErr)
			}
			if p.Status != tt.from {
				t.Errorf("status changed to %s on rejected transition", p.Status)
			}
		})
	}

	t.Run("same status is a no-op", func(t *testing.T) {
		s := newTestSystem(t)
		mustAddPatient(t, s, "Alice Moreau", 40)
		if err := s.SetStatus("1", models.StatusNormal); err != nil {
			t.Errorf("SetStatus to current status error = %v, want nil", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		s := newTestSystem(t)
		mustAddPatient(t, s, "Alice Moreau", 40)
		if err := s.SetStatus("1", "resting"); !IsValidation(err) {
			t.Errorf("SetStatus(resting) error = %v, want validation error", err)
		}
	})

	t.Run("terminal targets need the dedicated operations", func(t *testing.T) {
		s := newTestSystem(t)
		p := mustAddPatient(t, s, "Alice Moreau", 40)
		if err := s.AssignRoom("1", 101); err != nil {
			t.Fatal(err)
		}

		if err := s.SetStatus("1", models.StatusDischarged); !IsValidation(err) {
			t.Fatalf("SetStatus(discharged) error = %v, want validation error", err)
		}
		if err := s.SetStatus("1", models.StatusDeceased); !IsValidation(err) {
			t.Fatalf("SetStatus(deceased) error = %v, want validation error", err)
		}
		if p.Status != models.StatusNormal {
			t.Errorf("status = %s after rejected terminal targets, want normal", p.Status)
		}
		if len(s.Rooms()) != 1 {
			t.Errorf("rooms = %v, want patient still in 101", s.Rooms())
		}

		// Discharge does the real transition and frees the room.
		if err := s.Discharge("1"); err != nil {
			t.Fatalf("Discharge: %v", err)
		}
		if len(s.Rooms()) != 0 {
			t.Errorf("rooms = %v after discharge, want empty", s.Rooms())
		}
	})

	t.Run("terminal no-op stays a no-op", func(t *testing.T) {
		s := newTestSystem(t)
		mustAddPatient(t, s, "Alice Moreau", 40)
		if err := s.Discharge("1"); err != nil {
			t.Fatal(err)
		}
		if err := s.SetStatus("1", models.StatusDischarged); err != nil {
			t.Errorf("SetStatus to current terminal status error = %v, want nil", err)
		}
	})
}

func TestAssignRoom(t *testing.T) {
	t.Run("move between rooms frees the old one", func(t *testing.T) {
		s := newTestSystem(t)
		p := mustAddPatient(t, s, "Alice Moreau", 40)

		if err := s.AssignRoom("1", 5); err != nil {
			t.Fatalf("AssignRoom(5): %v", err)
		}
		if err := s.AssignRoom("1", 9); err != nil {
			t.Fatalf("AssignRoom(9): %v", err)
		}
		if p.RoomNumber == nil || *p.RoomNumber != 9 {
			t.Fatalf("room = %v, want 9", p.RoomNumber)
		}

		// Room 5 must be free again.
		mustAddPatient(t, s, "Ben Okafor", 55)
		if err := s.AssignRoom("2", 5); err != nil {
			t.Errorf("old room not released: %v", err)
		}
	})

	t.Run("own room re-assignment is allowed", func(t *testing.T) {
		s := newTestSystem(t)
		mustAddPatient(t, s, "Alice Moreau", 40)
		if err := s.AssignRoom("1", 5); err != nil {
			t.Fatal(err)
		}
		if err := s.AssignRoom("1", 5); err != nil {
			t.Errorf("re-assigning own room error = %v, want nil", err)
		}
	})

	t.Run("occupied room rejected", func(t *testing.T) {
		s := newTestSystem(t)
		mustAddPatient(t, s, "Alice Moreau", 40)
		mustAddPatient(t, s, "Ben Okafor", 55)
		if err := s.AssignRoom("1", 5); err != nil {
			t.Fatal(err)
		}
		if err := s.AssignRoom("2", 5); !IsValidation(err) {
			t.Errorf("AssignRoom into occupied room error = %v, want validation error", err)
		}
	})

	t.Run("terminal patient rejected", func(t *testing.T) {
		s := newTestSystem(t)
		mustAddPatient(t, s, "Alice Moreau", 40)
		if err := s.Discharge("1"); err != nil {
			t.Fatal(err)
		}
		if err := s.AssignRoom("1", 5); !errors.Is(err, ErrTerminalStatus) {
			t.Errorf("AssignRoom after discharge error = %v, want ErrTerminalStatus", err)
		}
	})
}

func TestDischarge(t *testing.T) {
	s := newTestSystem(t)
	p := mustAddPatient(t, s, "Alice Moreau", 40)
	if err := s.AssignRoom("1", 5); err != nil {
		t.Fatal(err)
	}

	if err := s.Discharge("1"); err != nil {
		t.Fatalf("Discharge: %v", err)
	}
	if p.Status != models.StatusDischarged {
		t.Errorf("status = %s, want %s", p.Status, models.StatusDischarged)
	}
	if p.RoomNumber != nil {
		t.Errorf("room not released on discharge: %v", *p.RoomNumber)
	}
	if len(s.Rooms()) != 0 {
		t.Errorf("occupancy index still has %d rooms", len(s.Rooms()))
	}

	if err := s.Discharge("1"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Discharge error = %v, want ErrInvalidTransition", err)
	}
}

func TestRecordDeath(t *testing.T) {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("records date and releases room", func(t *testing.T) {
		s := newTestSystem(t)
		p := mustAddPatient(t, s, "Alice Moreau", 40)
		if err := s.AssignRoom("1", 5); err != nil {
			t.Fatal(err)
		}

		if err := s.RecordDeath("1", date); err != nil {
			t.Fatalf("RecordDeath: %v", err)
		}
		if p.Status != models.StatusDeceased {
			t.Errorf("status = %s, want %s", p.Status, models.StatusDeceased)
		}
		if p.DateOfDeath == nil || !p.DateOfDeath.Equal(date) {
			t.Errorf("date of death = %v, want %v", p.DateOfDeath, date)
		}
		if p.RoomNumber != nil {
			t.Errorf("room not released: %v", *p.RoomNumber)
		}
	})

	t.Run("zero date rejected", func(t *testing.T) {
		s := newTestSystem(t)
		p := mustAddPatient(t, s, "Alice Moreau", 40)
		if err := s.RecordDeath("1", time.Time{}); !IsValidation(err) {
			t.Errorf("RecordDeath(zero) error = %v, want validation error", err)
		}
		if p.Status != models.StatusNormal {
			t.Errorf("status changed to %s on rejected death", p.Status)
		}
	})

	t.Run("discharged patient cannot die", func(t *testing.T) {
		s := newTestSystem(t)
		mustAddPatient(t, s, "Alice Moreau", 40)
		if err := s.Discharge("1"); err != nil {
			t.Fatal(err)
		}
		if err := s.RecordDeath("1", date); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("RecordDeath after discharge error = %v, want ErrInvalidTransition", err)
		}
	})
}

func TestRemovePatient_ReleasesRoom(t *testing.T) {
	s := newTestSystem(t)
	mustAddPatient(t, s, "Alice Moreau", 40)
	if err := s.AssignRoom("1", 5); err != nil {
		t.Fatal(err)
	}

	if err := s.RemovePatient("1"); err != nil {
		t.Fatalf("RemovePatient: %v", err)
	}
	if len(s.Patients()) != 0 {
		t.Errorf("patient still listed after removal")
	}

	mustAddPatient(t, s, "Ben Okafor", 55)
	if err := s.AssignRoom("2", 5); err != nil {
		t.Errorf("room not released on removal: %v", err)
	}
}
