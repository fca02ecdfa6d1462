package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// Operating modes selected through the MODE environment variable.
const (
	ModeInteractive = "interactive"
	ModeBatch       = "batch"
)

// Batch operations selected through the OPERATION environment variable.
const (
	OpAddPatient     = "add_patient"
	OpAddDoctor      = "add_doctor"
	OpGenerateReport = "generate_report"
)

// Env is the environment-variable surface. It drives batch mode and may
// override the storage paths from the config file.
type Env struct {
	DataFile  string `mapstructure:"DATA_FILE"`
	OutputDir string `mapstructure:"OUTPUT_DIR"`
	Mode      string `mapstructure:"MODE"`
	Operation string `mapstructure:"OPERATION"`

	PatientName      string `mapstructure:"PATIENT_NAME"`
	PatientAge       int    `mapstructure:"PATIENT_AGE"`
	PatientCondition string `mapstructure:"PATIENT_CONDITION"`
	PatientRoom      string `mapstructure:"PATIENT_ROOM"`

	DoctorName      string `mapstructure:"DOCTOR_NAME"`
	DoctorAge       int    `mapstructure:"DOCTOR_AGE"`
	DoctorSpecialty string `mapstructure:"DOCTOR_SPECIALTY"`

	// JSON arrays used to seed a new data file.
	InitialDoctors  string `mapstructure:"INITIAL_DOCTORS"`
	InitialPatients string `mapstructure:"INITIAL_PATIENTS"`
}

// LoadEnv reads the environment surface. The storage section of the file
// configuration supplies defaults for DATA_FILE and OUTPUT_DIR.
func LoadEnv(storage StorageConfig) (*Env, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DATA_FILE", storage.DataFile)
	v.SetDefault("OUTPUT_DIR", storage.OutputDir)
	v.SetDefault("MODE", ModeInteractive)
	v.SetDefault("PATIENT_NAME", "John Doe")
	v.SetDefault("PATIENT_AGE", 30)
	v.SetDefault("PATIENT_CONDITION", "General checkup")
	v.SetDefault("DOCTOR_NAME", "Dr. Smith")
	v.SetDefault("DOCTOR_AGE", 45)
	v.SetDefault("DOCTOR_SPECIALTY", "General Practice")

	// Bind explicitly so Unmarshal picks the variables up.
	for _, key := range []string{
		"DATA_FILE", "OUTPUT_DIR", "MODE", "OPERATION",
		"PATIENT_NAME", "PATIENT_AGE", "PATIENT_CONDITION", "PATIENT_ROOM",
		"DOCTOR_NAME", "DOCTOR_AGE", "DOCTOR_SPECIALTY",
		"INITIAL_DOCTORS", "INITIAL_PATIENTS",
	} {
		v.BindEnv(key)
	}

	env := &Env{}
	if err := v.Unmarshal(env); err != nil {
		return nil, fmt.Errorf("unmarshal environment: %w", err)
	}

	if env.Mode != ModeInteractive && env.Mode != ModeBatch {
		return nil, fmt.Errorf("invalid MODE %q (want %s or %s)", env.Mode, ModeInteractive, ModeBatch)
	}
	if env.PatientAge < 0 {
		return nil, fmt.Errorf("invalid PATIENT_AGE %d", env.PatientAge)
	}
	if env.DoctorAge < 0 {
		return nil, fmt.Errorf("invalid DOCTOR_AGE %d", env.DoctorAge)
	}
	if env.PatientRoom != "" {
		if _, err := strconv.Atoi(env.PatientRoom); err != nil {
			return nil, fmt.Errorf("invalid PATIENT_ROOM %q", env.PatientRoom)
		}
	}

	return env, nil
}

// Room parses the optional PATIENT_ROOM value, nil when unset.
func (e *Env) Room() *int {
	if e.PatientRoom == "" {
		return nil
	}
	n, err := strconv.Atoi(e.PatientRoom)
	if err != nil {
		return nil
	}
	return &n
}
