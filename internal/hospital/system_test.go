package hospital

import (
	"errors"
	"testing"

	"github.com/chpms/chpms/internal/models"
)

func newTestSystem(t *testing.T) *System {
	t.Helper()
	return NewSystem()
}

func mustAddPatient(t *testing.T, s *System, name string, age int) *models.Patient {
	t.Helper()
	p, err := s.AddPatient(AddPatientInput{Name: name, Age: age, Condition: "General checkup"})
	if err != nil {
		t.Fatalf("AddPatient(%s): %v", name, err)
	}
	return p
}

func mustAddDoctor(t *testing.T, s *System, dept, name string) *models.Staff {
	t.Helper()
	if _, ok := s.departments[dept]; !ok {
		if _, err := s.AddDepartment(dept); err != nil {
			t.Fatalf("AddDepartment(%s): %v", dept, err)
		}
	}
	member, err := s.AddStaff(dept, AddStaffInput{Name: name, Age: 45, Role: models.RoleDoctor, Specialty: "General"})
	if err != nil {
		t.Fatalf("AddStaff(%s): %v", name, err)
	}
	return member
}

func TestSystem_SequentialNumbering(t *testing.T) {
	s := newTestSystem(t)

	a := mustAddPatient(t, s, "Alice Moreau", 40)
	b := mustAddPatient(t, s, "Ben Okafor", 55)
	c := mustAddPatient(t, s, "Carla Jensen", 31)

	if a.PatientNumber != 1 || b.PatientNumber != 2 || c.PatientNumber != 3 {
		t.Fatalf("numbers = %d, %d, %d; want 1, 2, 3", a.PatientNumber, b.PatientNumber, c.PatientNumber)
	}
	if got := s.NextPatientNumber(); got != 4 {
		t.Fatalf("NextPatientNumber() = %d, want 4", got)
	}
}

func TestSystem_NumbersNeverReused(t *testing.T) {
	s := newTestSystem(t)

	mustAddPatient(t, s, "Alice Moreau", 40)
	mustAddPatient(t, s, "Ben Okafor", 55)

	if err := s.RemovePatient("2"); err != nil {
		t.Fatalf("RemovePatient(2): %v", err)
	}

	// The freed number must not be reissued.
	next := mustAddPatient(t, s, "Carla Jensen", 31)
	if next.PatientNumber != 3 {
		t.Errorf("new patient number = %d, want 3", next.PatientNumber)
	}
}

func TestSystem_FindPatient(t *testing.T) {
	s := newTestSystem(t)

	mustAddPatient(t, s, "Alice Moreau", 40)
	second := mustAddPatient(t, s, "2", 55) // awkward but legal name

	t.Run("number match wins over name", func(t *testing.T) {
		got, err := s.FindPatient("2")
		if err != nil {
			t.Fatalf("FindPatient(2): %v", err)
		}
		if got != second {
			t.Errorf("FindPatient(2) resolved %q, want the patient numbered 2", got.Name)
		}
	})

	t.Run("name lookup", func(t *testing.T) {
		got, err := s.FindPatient("Alice Moreau")
		if err != nil {
			t.Fatalf("FindPatient(Alice Moreau): %v", err)
		}
		if got.PatientNumber != 1 {
			t.Errorf("resolved patient %d, want 1", got.PatientNumber)
		}
	})

	t.Run("ambiguous name resolves to earliest admission", func(t *testing.T) {
		dupe := mustAddPatient(t, s, "Alice Moreau", 70)
		got, err := s.FindPatient("Alice Moreau")
		if err != nil {
			t.Fatalf("FindPatient: %v", err)
		}
		if got.PatientNumber != 1 {
			t.Errorf("resolved patient %d, want 1 (not the later %d)", got.PatientNumber, dupe.PatientNumber)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := s.FindPatient("nobody")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("FindPatient(nobody) error = %v, want ErrNotFound", err)
		}
	})
}

func TestSystem_FindPatientsByName(t *testing.T) {
	s := newTestSystem(t)

	mustAddPatient(t, s, "Alice Moreau", 40)
	mustAddPatient(t, s, "Ben Okafor", 55)
	mustAddPatient(t, s, "Alice Moreau", 70)

	got := s.FindPatientsByName("Alice Moreau")
	if len(got) != 2 {
		t.Fatalf("FindPatientsByName returned %d, want 2", len(got))
	}
	if got[0].PatientNumber != 1 || got[1].PatientNumber != 3 {
		t.Errorf("order = %d, %d; want 1, 3", got[0].PatientNumber, got[1].PatientNumber)
	}
}

func TestSystem_RoomsSorted(t *testing.T) {
	s := newTestSystem(t)

	room12, room3 := 12, 3
	if _, err := s.AddPatient(AddPatientInput{Name: "Alice Moreau", Age: 40, Room: &room12}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddPatient(AddPatientInput{Name: "Ben Okafor", Age: 55, Room: &room3}); err != nil {
		t.Fatal(err)
	}

	rooms := s.Rooms()
	if len(rooms) != 2 {
		t.Fatalf("Rooms() returned %d, want 2", len(rooms))
	}
	if rooms[0].Room != 3 || rooms[1].Room != 12 {
		t.Errorf("room order = %d, %d; want 3, 12", rooms[0].Room, rooms[1].Room)
	}
	if rooms[0].PatientName != "Ben Okafor" {
		t.Errorf("room 3 occupant = %q, want Ben Okafor", rooms[0].PatientName)
	}
}

func TestRestore_RejectsInconsistentData(t *testing.T) {
	valid := func() ([]*models.Department, []*models.Patient) {
		depts := []*models.Department{{Name: "Cardiology"}}
		patients := []*models.Patient{
			{PatientNumber: 1, Name: "Alice Moreau", Age: 40, Status: models.StatusNormal},
			{PatientNumber: 2, Name: "Ben Okafor", Age: 55, Status: models.StatusNormal},
		}
		return depts, patients
	}

	t.Run("valid data restores", func(t *testing.T) {
		depts, patients := valid()
		s, err := Restore(3, depts, patients)
		if err != nil {
			t.Fatalf("Restore: %v", err)
		}
		if got := s.NextPatientNumber(); got != 3 {
			t.Errorf("NextPatientNumber() = %d, want 3", got)
		}
	})

	t.Run("counter below highest number", func(t *testing.T) {
		depts, patients := valid()
		if _, err := Restore(2, depts, patients); err == nil {
			t.Error("Restore accepted a counter at an existing patient number")
		}
	})

	t.Run("duplicate patient numbers", func(t *testing.T) {
		depts, patients := valid()
		patients[1].PatientNumber = 1
		if _, err := Restore(3, depts, patients); err == nil {
			t.Error("Restore accepted duplicate patient numbers")
		}
	})

	t.Run("duplicate departments", func(t *testing.T) {
		depts, patients := valid()
		depts = append(depts, &models.Department{Name: "Cardiology"})
		if _, err := Restore(3, depts, patients); err == nil {
			t.Error("Restore accepted duplicate departments")
		}
	})

	t.Run("room conflict", func(t *testing.T) {
		depts, patients := valid()
		room := 5
		patients[0].RoomNumber = &room
		otherRoom := 5
		patients[1].RoomNumber = &otherRoom
		if _, err := Restore(3, depts, patients); err == nil {
			t.Error("Restore accepted two patients in one room")
		}
	})

	t.Run("non-positive counter", func(t *testing.T) {
		if _, err := Restore(0, nil, nil); err == nil {
			t.Error("Restore accepted a non-positive counter")
		}
	})
}
