package config

import "testing"

func testStorage() StorageConfig {
	return StorageConfig{DataFile: "hospital_data.json", OutputDir: "output"}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATA_FILE", "OUTPUT_DIR", "MODE", "OPERATION",
		"PATIENT_NAME", "PATIENT_AGE", "PATIENT_CONDITION", "PATIENT_ROOM",
		"DOCTOR_NAME", "DOCTOR_AGE", "DOCTOR_SPECIALTY",
		"INITIAL_DOCTORS", "INITIAL_PATIENTS",
	} {
		// Empty values count as unset, so the defaults apply.
		t.Setenv(key, "")
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	clearEnv(t)

	env, err := LoadEnv(testStorage())
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}

	if env.Mode != ModeInteractive {
		t.Errorf("Mode = %q, want interactive", env.Mode)
	}
	if env.DataFile != "hospital_data.json" || env.OutputDir != "output" {
		t.Errorf("storage defaults not applied: %q, %q", env.DataFile, env.OutputDir)
	}
	if env.PatientName != "John Doe" || env.PatientAge != 30 || env.PatientCondition != "General checkup" {
		t.Errorf("patient defaults = %q, %d, %q", env.PatientName, env.PatientAge, env.PatientCondition)
	}
	if env.DoctorName != "Dr. Smith" || env.DoctorAge != 45 || env.DoctorSpecialty != "General Practice" {
		t.Errorf("doctor defaults = %q, %d, %q", env.DoctorName, env.DoctorAge, env.DoctorSpecialty)
	}
	if env.Room() != nil {
		t.Errorf("Room() = %v, want nil", env.Room())
	}
}

func TestLoadEnv_BatchOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODE", "batch")
	t.Setenv("OPERATION", "add_patient")
	t.Setenv("PATIENT_NAME", "Alice Moreau")
	t.Setenv("PATIENT_AGE", "40")
	t.Setenv("PATIENT_ROOM", "12")
	t.Setenv("DATA_FILE", "ward.json")
	t.Setenv("OUTPUT_DIR", "reports")

	env, err := LoadEnv(testStorage())
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}

	if env.Mode != ModeBatch || env.Operation != OpAddPatient {
		t.Errorf("Mode = %q, Operation = %q", env.Mode, env.Operation)
	}
	if env.PatientName != "Alice Moreau" || env.PatientAge != 40 {
		t.Errorf("patient = %q, %d", env.PatientName, env.PatientAge)
	}
	if env.DataFile != "ward.json" || env.OutputDir != "reports" {
		t.Errorf("storage overrides not applied: %q, %q", env.DataFile, env.OutputDir)
	}
	room := env.Room()
	if room == nil || *room != 12 {
		t.Errorf("Room() = %v, want 12", room)
	}
}

func TestLoadEnv_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid mode", "MODE", "daemon"},
		{"negative patient age", "PATIENT_AGE", "-5"},
		{"negative doctor age", "DOCTOR_AGE", "-1"},
		{"non-numeric room", "PATIENT_ROOM", "ward-b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := LoadEnv(testStorage()); err == nil {
				t.Errorf("LoadEnv accepted %s=%q", tt.key, tt.value)
			}
		})
	}
}
