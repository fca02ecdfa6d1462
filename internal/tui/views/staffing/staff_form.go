package staffing

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

var roleOptions = []string{"doctor", "nurse", "other"}

// StaffForm is a form for hiring or editing staff members.
type StaffForm struct {
	mode   FormMode
	member *models.Staff

	department *components.Input
	name       *components.Input
	age        *components.Input
	role       *components.Select
	specialty  *components.Input

	focusIndex int
	fields     []components.FormField
	submitted  bool
	cancelled  bool
	err        string
}

// FormData is the parsed form result.
type FormData struct {
	Department string
	Name       string
	Age        int
	Role       models.StaffRole
	Specialty  string
}

// NewStaffForm creates a new staff form.
func NewStaffForm(mode FormMode) *StaffForm {
	f := &StaffForm{
		mode: mode,

		department: components.NewInput("Department").SetRequired(true).SetWidth(20),
		name:       components.NewInput("Name").SetRequired(true).SetWidth(25),
		age:        components.NewInput("Age").SetRequired(true).SetWidth(4).SetMaxLength(3),
		role:       components.NewSelect("Role", roleOptions),
		specialty:  components.NewInput("Specialty").SetWidth(25),
	}

	f.fields = []components.FormField{
		f.department,
		f.name,
		f.age,
		f.role,
		f.specialty,
	}
	f.fields[0].Focus(true)

	return f
}

// SetStaff populates the form with an existing staff member.
func (f *StaffForm) SetStaff(department string, member *models.Staff) {
	f.member = member
	f.department.SetValue(department)
	f.name.SetValue(member.Name)
	f.age.SetValue(fmt.Sprintf("%d", member.Age))
	for i, r := range roleOptions {
		if r == string(member.Role) {
			f.role.SetSelected(i)
			break
		}
	}
	f.specialty.SetValue(member.Specialty)
}

// Staff returns the record being edited, nil in add mode.
func (f *StaffForm) Staff() *models.Staff {
	return f.member
}

// HandleKey handles key input.
func (f *StaffForm) HandleKey(key string) {
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

func (f *StaffForm) nextField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = (f.focusIndex + 1) % len(f.fields)
	f.fields[f.focusIndex].Focus(true)
}

func (f *StaffForm) prevField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}
	f.fields[f.focusIndex].Focus(true)
}

func (f *StaffForm) submit() {
	f.err = ""

	valid := f.department.Validate()
	if !f.name.Validate() {
		valid = false
	}
	if !f.age.Validate() {
		valid = false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(f.age.Value())); err != nil {
		f.err = "Invalid age"
		valid = false
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
func (f *StaffForm) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if the form was cancelled.
func (f *StaffForm) IsCancelled() bool {
	return f.cancelled
}

// Data returns the parsed form values.
func (f *StaffForm) Data() (FormData, error) {
	age, err := strconv.Atoi(strings.TrimSpace(f.age.Value()))
	if err != nil {
		return FormData{}, fmt.Errorf("invalid age: %w", err)
	}

	return FormData{
		Department: strings.TrimSpace(f.department.Value()),
		Name:       strings.TrimSpace(f.name.Value()),
		Age:        age,
		Role:       models.StaffRole(f.role.Value()),
		Specialty:  strings.TrimSpace(f.specialty.Value()),
	}, nil
}

// Render renders the form.
func (f *StaffForm) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))

	var b strings.Builder

	title := "HIRE STAFF"
	if f.mode == FormModeEdit {
		title = "EDIT STAFF"
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
