// Package batch implements the unattended operating mode. A single
// operation is read from the environment, applied to the data file, and
// the result is saved back. Nothing is interactive and nothing is gated
// behind the login credentials.
package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chpms/chpms/internal/config"
	"github.com/chpms/chpms/internal/export"
	"github.com/chpms/chpms/internal/hospital"
	"github.com/chpms/chpms/internal/models"
	"github.com/chpms/chpms/internal/store"
)

// SeedDepartment receives doctors created through the environment surface.
const SeedDepartment = "General Medicine"

// seedDoctor is the wire shape of one INITIAL_DOCTORS entry.
type seedDoctor struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Specialty string `json:"specialty"`
}

// seedPatient is the wire shape of one INITIAL_PATIENTS entry.
type seedPatient struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Condition string `json:"condition"`
	Room      *int   `json:"room,omitempty"`
}

// Run executes one batch operation and persists the result. The data file
// lives at OUTPUT_DIR/DATA_FILE; a missing file yields a fresh system,
// optionally seeded from INITIAL_DOCTORS and INITIAL_PATIENTS.
func Run(logger *slog.Logger, cfg *config.Config, env *config.Env) error {
	if err := os.MkdirAll(env.OutputDir, 0750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	dataPath := filepath.Join(env.OutputDir, env.DataFile)

	sys, fresh, err := loadOrSeed(logger, dataPath, env)
	if err != nil {
		return err
	}

	switch env.Operation {
	case config.OpAddPatient:
		p, err := sys.AddPatient(hospital.AddPatientInput{
			Name:      env.PatientName,
			Age:       env.PatientAge,
			Condition: env.PatientCondition,
			Room:      env.Room(),
		})
		if err != nil {
			return fmt.Errorf("add patient: %w", err)
		}
		logger.Info("batch: patient admitted",
			"patient_number", p.PatientNumber,
			"name", p.Name)

	case config.OpAddDoctor:
		// The seed department may already exist; only a duplicate is tolerated.
		if _, err := sys.AddDepartment(SeedDepartment); err != nil && !errors.Is(err, hospital.ErrDuplicateDepartment) {
			return fmt.Errorf("ensure department: %w", err)
		}
		member, err := sys.AddStaff(SeedDepartment, hospital.AddStaffInput{
			Name:      env.DoctorName,
			Age:       env.DoctorAge,
			Role:      models.RoleDoctor,
			Specialty: env.DoctorSpecialty,
		})
		if err != nil {
			return fmt.Errorf("add doctor: %w", err)
		}
		logger.Info("batch: doctor hired",
			"staff_id", member.ID,
			"name", member.Name,
			"department", SeedDepartment)

	case config.OpGenerateReport:
		textPath, excelPath, err := export.WriteReports(env.OutputDir, cfg.Hospital.Name, sys)
		if err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		logger.Info("batch: reports written", "text", textPath, "excel", excelPath)

	case "":
		// No operation: seeding (when requested) and the save below still run.
		logger.Info("batch: no operation requested", "fresh", fresh)

	default:
		return fmt.Errorf("unknown OPERATION %q", env.Operation)
	}

	if err := store.Save(dataPath, sys); err != nil {
		return fmt.Errorf("save data file: %w", err)
	}
	logger.Info("batch: data saved", "path", dataPath)
	return nil
}

// loadOrSeed opens the data file, or builds a fresh system seeded from the
// INITIAL_* variables when the file does not exist yet. Seeds are ignored
// for an existing file.
func loadOrSeed(logger *slog.Logger, dataPath string, env *config.Env) (*hospital.System, bool, error) {
	if _, err := os.Stat(dataPath); err == nil {
		sys, err := store.Load(dataPath)
		if err != nil {
			return nil, false, fmt.Errorf("load data file: %w", err)
		}
		return sys, false, nil
	} else if !os.IsNotExist(err) {
		return nil, false, fmt.Errorf("stat data file: %w", err)
	}

	sys := hospital.NewSystem()

	if env.InitialDoctors != "" {
		var docs []seedDoctor
		if err := json.Unmarshal([]byte(env.InitialDoctors), &docs); err != nil {
			return nil, false, fmt.Errorf("parse INITIAL_DOCTORS: %w", err)
		}
		if len(docs) > 0 {
			if _, err := sys.AddDepartment(SeedDepartment); err != nil {
				return nil, false, fmt.Errorf("seed department: %w", err)
			}
			for i, d := range docs {
				if _, err := sys.AddStaff(SeedDepartment, hospital.AddStaffInput{
					Name:      d.Name,
					Age:       d.Age,
					Role:      models.RoleDoctor,
					Specialty: d.Specialty,
				}); err != nil {
					return nil, false, fmt.Errorf("seed doctor %d: %w", i, err)
				}
			}
			logger.Info("batch: seeded doctors", "count", len(docs))
		}
	}

	if env.InitialPatients != "" {
		var pats []seedPatient
		if err := json.Unmarshal([]byte(env.InitialPatients), &pats); err != nil {
			return nil, false, fmt.Errorf("parse INITIAL_PATIENTS: %w", err)
		}
		for i, p := range pats {
			if _, err := sys.AddPatient(hospital.AddPatientInput{
				Name:      p.Name,
				Age:       p.Age,
				Condition: p.Condition,
				Room:      p.Room,
			}); err != nil {
				return nil, false, fmt.Errorf("seed patient %d: %w", i, err)
			}
		}
		if len(pats) > 0 {
			logger.Info("batch: seeded patients", "count", len(pats))
		}
	}

	return sys, true, nil
}
