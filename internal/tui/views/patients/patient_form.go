package patients

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chpms/chpms/internal/models"
	"github.com/chpms/chpms/internal/tui/components"
)

// FormMode indicates the form mode.
type FormMode int

const (
	FormModeAdd FormMode = iota
	FormModeEdit
)

// PatientForm is a form for admitting or editing patients.
type PatientForm struct {
	mode    FormMode
	patient *models.Patient

	name      *components.Input
	age       *components.Input
	condition *components.Input
	room      *components.Input
	nextOfKin *components.Input
	insurer   *components.Input
	discount  *components.Input

	focusIndex int
	fields     []components.FormField
	submitted  bool
	cancelled  bool
	err        string
}

// FormData is the parsed form result.
type FormData struct {
	Name      string
	Age       int
	Condition string
	Room      *int
	NextOfKin string
	Insurance *models.Insurance
}

// NewPatientForm creates a new patient form.
func NewPatientForm(mode FormMode) *PatientForm {
	f := &PatientForm{
		mode: mode,

		name:      components.NewInput("Name").SetRequired(true).SetWidth(25),
		age:       components.NewInput("Age").SetRequired(true).SetWidth(4).SetMaxLength(3),
		condition: components.NewInput("Condition").SetWidth(30),
		room:      components.NewInput("Room").SetWidth(5).SetMaxLength(4).SetPlaceholder("none"),
		nextOfKin: components.NewInput("Next of Kin").SetWidth(25),
		insurer:   components.NewInput("Insurer").SetWidth(25).SetPlaceholder("none"),
		discount:  components.NewInput("Discount %").SetWidth(6).SetMaxLength(5).SetValue("0"),
	}

	f.fields = []components.FormField{
		f.name,
		f.age,
		f.condition,
		f.room,
		f.nextOfKin,
		f.insurer,
		f.discount,
	}
	f.fields[0].Focus(true)

	return f
}

// SetPatient populates the form with existing patient data.
func (f *PatientForm) SetPatient(p *models.Patient) {
	f.patient = p
	f.name.SetValue(p.Name)
	f.age.SetValue(fmt.Sprintf("%d", p.Age))
	f.condition.SetValue(p.Condition)
	if p.RoomNumber != nil {
		f.room.SetValue(fmt.Sprintf("%d", *p.RoomNumber))
	}
	f.nextOfKin.SetValue(p.NextOfKin)
	if p.Insurance != nil {
		f.insurer.SetValue(p.Insurance.Provider)
		f.discount.SetValue(strconv.FormatFloat(p.Insurance.DiscountPct, 'f', -1, 64))
	}
}

// Patient returns the record being edited, nil in add mode.
func (f *PatientForm) Patient() *models.Patient {
	return f.patient
}

// HandleKey handles key input.
func (f *PatientForm) HandleKey(key string) {
	switch key {
	case "tab", "down":
		f.nextField()
	case "shift+tab", "up":
		f.prevField()
	case "ctrl+s":
		f.submit()
	case "esc":
		f.cancelled = true
	case "enter":
		if f.focusIndex == len(f.fields)-1 {
			f.submit()
		} else {
			f.nextField()
		}
	default:
		f.fields[f.focusIndex].HandleKey(key)
	}
}

func (f *PatientForm) nextField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = (f.focusIndex + 1) % len(f.fields)
	f.fields[f.focusIndex].Focus(true)
}

func (f *PatientForm) prevField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}
	f.fields[f.focusIndex].Focus(true)
}

func (f *PatientForm) submit() {
	f.err = ""

	valid := f.name.Validate()
	if !f.age.Validate() {
		valid = false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(f.age.Value())); err != nil {
		f.err = "Invalid age"
		valid = false
	}
	if v := strings.TrimSpace(f.room.Value()); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			f.err = "Invalid room number"
			valid = false
		}
	}
	if v := strings.TrimSpace(f.discount.Value()); v != "" {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			f.err = "Invalid discount"
			valid = false
		}
	}

	if !valid {
		if f.err == "" {
			f.err = "Please fill in all required fields"
		}
		return
	}

	f.submitted = true
}

// IsSubmitted returns true if the form was submitted.
func (f *PatientForm) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if the form was cancelled.
func (f *PatientForm) IsCancelled() bool {
	return f.cancelled
}

// Data returns the parsed form values.
func (f *PatientForm) Data() (FormData, error) {
	age, err := strconv.Atoi(strings.TrimSpace(f.age.Value()))
	if err != nil {
		return FormData{}, fmt.Errorf("invalid age: %w", err)
	}

	d := FormData{
		Name:      strings.TrimSpace(f.name.Value()),
		Age:       age,
		Condition: strings.TrimSpace(f.condition.Value()),
		NextOfKin: strings.TrimSpace(f.nextOfKin.Value()),
	}

	if v := strings.TrimSpace(f.room.Value()); v != "" {
		room, err := strconv.Atoi(v)
		if err != nil {
			return FormData{}, fmt.Errorf("invalid room: %w", err)
		}
		d.Room = &room
	}

	if provider := strings.TrimSpace(f.insurer.Value()); provider != "" {
		pct := 0.0
		if v := strings.TrimSpace(f.discount.Value()); v != "" {
			pct, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return FormData{}, fmt.Errorf("invalid discount: %w", err)
			}
		}
		d.Insurance = &models.Insurance{Provider: provider, DiscountPct: pct}
	}

	return d, nil
}

// Render renders the form.
func (f *PatientForm) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))

	var b strings.Builder

	title := "ADMIT PATIENT"
	if f.mode == FormModeEdit {
		title = "EDIT PATIENT"
	}
	b.WriteString(titleStyle.Render("═══ " + title + " ═══"))
	b.WriteString("\n\n")

	for _, field := range f.fields {
		b.WriteString(field.Render())
		b.WriteString("\n")
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("Error: " + f.err))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("Tab/Down:Next  Shift+Tab/Up:Prev  Ctrl+S:Save  Esc:Cancel"))

	return b.String()
}
