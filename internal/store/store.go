// Package store persists the full hospital record graph as a single JSON
// document. Saving writes the whole file atomically; loading is two-pass,
// materializing every record before resolving cross-references.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/chpms/chpms/internal/hospital"
	"github.com/chpms/chpms/internal/models"
	"github.com/chpms/chpms/internal/util"
)

// SchemaVersion identifies the document layout.
const SchemaVersion = 1

// ErrCorruptData is returned when a document parses but violates the
// record invariants (dangling references, key mismatches, bad counter).
var ErrCorruptData = errors.New("corrupt data file")

type document struct {
	SchemaVersion     int                        `json:"schema_version"`
	NextPatientNumber int                        `json:"next_patient_number"`
	Departments       map[string]departmentDoc   `json:"departments"`
	Patients          map[string]*models.Patient `json:"patients"`
}

type departmentDoc struct {
	Staff []*models.Staff `json:"staff"`
}

// Save writes the system to path. The document is written to a temp file
// in the target directory and renamed into place, so a crash mid-write
// never corrupts the previous file.
func Save(path string, sys *hospital.System) error {
	doc := document{
		SchemaVersion:     SchemaVersion,
		NextPatientNumber: sys.NextPatientNumber(),
		Departments:       make(map[string]departmentDoc),
		Patients:          make(map[string]*models.Patient),
	}
	for _, d := range sys.Departments() {
		doc.Departments[d.Name] = departmentDoc{Staff: d.Staff}
	}
	for _, p := range sys.Patients() {
		doc.Patients[strconv.Itoa(p.PatientNumber)] = p
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding data file: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}

// Load reads a document from path and rebuilds the system. Pass one
// materializes departments, staff and patients; pass two resolves every
// assigned-doctor reference by key lookup. Unresolvable references fail
// with ErrCorruptData rather than being dropped.
func Load(path string) (*hospital.System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing data file: %w", err)
	}
	if doc.NextPatientNumber < 1 {
		return nil, fmt.Errorf("%w: next_patient_number %d", ErrCorruptData, doc.NextPatientNumber)
	}

	// Pass one: materialize. JSON objects carry no order, so departments
	// sort by name and patients by number; admission order and number
	// order coincide because numbers only grow.
	deptNames := make([]string, 0, len(doc.Departments))
	for name := range doc.Departments {
		deptNames = append(deptNames, name)
	}
	sort.Strings(deptNames)

	departments := make([]*models.Department, 0, len(deptNames))
	for _, name := range deptNames {
		departments = append(departments, &models.Department{
			Name:  name,
			Staff: doc.Departments[name].Staff,
		})
	}

	numbers := make([]int, 0, len(doc.Patients))
	byNumber := make(map[int]*models.Patient, len(doc.Patients))
	for key, p := range doc.Patients {
		n, err := strconv.Atoi(key)
		if err != nil || p == nil || n != p.PatientNumber {
			return nil, fmt.Errorf("%w: patient key %q does not match its record", ErrCorruptData, key)
		}
		numbers = append(numbers, n)
		byNumber[n] = p
	}
	sort.Ints(numbers)

	patients := make([]*models.Patient, 0, len(numbers))
	for _, n := range numbers {
		patients = append(patients, byNumber[n])
	}

	// Pass two: resolve weak references against the materialized graph.
	staffByDept := make(map[string]map[string]bool, len(departments))
	for _, d := range departments {
		ids := make(map[string]bool, len(d.Staff))
		for _, member := range d.Staff {
			if !util.IsValidID(member.ID) {
				return nil, fmt.Errorf("%w: department %q staff ID %q is malformed", ErrCorruptData, d.Name, member.ID)
			}
			ids[member.ID] = true
		}
		staffByDept[d.Name] = ids
	}
	for _, p := range patients {
		ref := p.AssignedDoctor
		if ref == nil {
			continue
		}
		ids, ok := staffByDept[ref.Department]
		if !ok {
			return nil, fmt.Errorf("%w: patient %d references missing department %q", ErrCorruptData, p.PatientNumber, ref.Department)
		}
		if !ids[ref.StaffID] {
			return nil, fmt.Errorf("%w: patient %d references missing staff %s in %q", ErrCorruptData, p.PatientNumber, ref.StaffID, ref.Department)
		}
	}

	sys, err := hospital.Restore(doc.NextPatientNumber, departments, patients)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return sys, nil
}

// LoadOrInit loads the document at path, or returns a fresh empty system
// when the file does not exist yet. Any other failure is reported.
func LoadOrInit(path string) (*hospital.System, error) {
	sys, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return hospital.NewSystem(), nil
	}
	if err != nil {
		return nil, err
	}
	return sys, nil
}
