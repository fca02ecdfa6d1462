package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chpms/chpms/internal/auth"
	"github.com/chpms/chpms/internal/config"
	"github.com/chpms/chpms/internal/export"
	"github.com/chpms/chpms/internal/hospital"
	"github.com/chpms/chpms/internal/models"
	"github.com/chpms/chpms/internal/tui/components"
	billviews "github.com/chpms/chpms/internal/tui/views/billing"
	patviews "github.com/chpms/chpms/internal/tui/views/patients"
	staffviews "github.com/chpms/chpms/internal/tui/views/staffing"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// Module represents a view module in the application.
type Module string

const (
	ModuleDashboard Module = "dashboard"
	ModulePatients  Module = "patients"
	ModuleStaffing  Module = "staffing"
	ModuleBilling   Module = "billing"
	ModuleReports   Module = "reports"
	ModuleHelp      Module = "help"
)

// SaveFunc persists the records core. Called on demand and at exit.
type SaveFunc func(*hospital.System) error

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	system *hospital.System
	config *config.Config
	gate   *auth.Gate
	save   SaveFunc
	logger *slog.Logger

	// Views
	rosterView    *patviews.RosterView
	patientForm   *patviews.PatientForm
	directoryView *staffviews.DirectoryView
	staffForm     *staffviews.StaffForm
	ledgerView    *billviews.LedgerView

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool
	dirty       bool

	// Login gate state
	authenticated bool
	loginUser     *components.Input
	loginPass     *components.Input
	loginFocus    int
	loginErr      string

	// Current view
	currentModule  Module
	previousModule Module
	showDetail     bool
	showForm       bool
	searchMode     bool
	searchInput    string

	// Active single-purpose prompt, nil when none
	prompt *prompt

	// Alerts
	alerts []Alert
}

// Alert represents a status line message.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
)

// prompt is a small inline form for one focused operation, like assigning
// a room or creating a department.
type prompt struct {
	title      string
	inputs     []*components.Input
	focusIndex int
	apply      func(values []string) error
}

func newPrompt(title string, apply func([]string) error, inputs ...*components.Input) *prompt {
	if len(inputs) > 0 {
		inputs[0].Focus(true)
	}
	return &prompt{title: title, inputs: inputs, apply: apply}
}

func (p *prompt) values() []string {
	out := make([]string, len(p.inputs))
	for i, in := range p.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

// New creates a new App instance.
func New(sys *hospital.System, cfg *config.Config, gate *auth.Gate, save SaveFunc, logger *slog.Logger) *App {
	rosterView := patviews.NewRosterView(sys)
	directoryView := staffviews.NewDirectoryView(sys)
	ledgerView := billviews.NewLedgerView(sys)

	return &App{
		system:        sys,
		config:        cfg,
		gate:          gate,
		save:          save,
		logger:        logger,
		rosterView:    rosterView,
		directoryView: directoryView,
		ledgerView:    ledgerView,
		theme:         NewTheme(cfg.Display.ColorScheme),
		keys:          DefaultKeyMap(),
		currentModule: ModuleDashboard,
		loginUser:     components.NewInput("Username").SetRequired(true).SetWidth(20),
		loginPass:     components.NewInput("Password").SetRequired(true).SetWidth(20).SetMasked(true),
		alerts:        []Alert{},
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.loginUser.Focus(true)
	return tea.EnterAltScreen
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil
	}

	return a, nil
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.authenticated {
		return a.handleLoginKeys(msg)
	}

	// Exit confirmation takes priority over everything.
	if a.showConfirm {
		return a.handleConfirmKeys(msg)
	}

	// Prompts and forms need all input before global keys apply.
	if a.prompt != nil {
		return a.handlePromptKeys(msg)
	}
	if a.showForm {
		return a.handleFormKeys(msg)
	}
	if a.searchMode {
		return a.handleSearchKeys(msg)
	}

	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	if a.keys.IsFunctionKey(msg) {
		module := a.keys.GetFunctionKeyModule(msg)
		switch module {
		case "quit":
			a.showConfirm = true
		case "help":
			a.previousModule = a.currentModule
			a.currentModule = ModuleHelp
		case "dashboard":
			a.currentModule = ModuleDashboard
			a.showDetail = false
		case "patients":
			a.currentModule = ModulePatients
			a.showDetail = false
			a.rosterView.Load()
		case "staffing":
			a.currentModule = ModuleStaffing
			a.showDetail = false
			a.directoryView.Load()
		case "billing":
			a.currentModule = ModuleBilling
			a.showDetail = false
			a.ledgerView.Load()
		case "reports":
			a.currentModule = ModuleReports
		}
		return a, nil
	}

	if a.keys.Back.Matches(msg) {
		if a.showDetail {
			a.showDetail = false
			return a, nil
		}
		if a.currentModule == ModuleHelp && a.previousModule != "" {
			a.currentModule = a.previousModule
			a.previousModule = ""
		}
		return a, nil
	}

	switch a.currentModule {
	case ModulePatients:
		return a.handlePatientKeys(msg)
	case ModuleStaffing:
		return a.handleStaffingKeys(msg)
	case ModuleBilling:
		return a.handleBillingKeys(msg)
	case ModuleReports:
		return a.handleReportKeys(msg)
	}

	return a, nil
}

// handleLoginKeys processes the login screen.
func (a *App) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit
	case "tab", "shift+tab", "up", "down":
		a.loginFocus = 1 - a.loginFocus
		a.loginUser.Focus(a.loginFocus == 0)
		a.loginPass.Focus(a.loginFocus == 1)
	case "enter":
		if a.loginFocus == 0 {
			a.loginFocus = 1
			a.loginUser.Focus(false)
			a.loginPass.Focus(true)
			return a, nil
		}
		if a.gate.Authenticate(a.loginUser.Value(), a.loginPass.Value()) {
			a.authenticated = true
			a.loginErr = ""
			a.logger.Info("operator authenticated", "username", a.loginUser.Value())
			a.AddAlert(AlertInfo, "Welcome to "+a.config.Hospital.Name)
		} else {
			a.loginErr = "ACCESS DENIED"
			a.logger.Warn("failed login attempt", "username", a.loginUser.Value())
			a.loginPass.SetValue("")
		}
	default:
		if a.loginFocus == 0 {
			a.loginUser.HandleKey(key)
		} else {
			a.loginPass.HandleKey(key)
		}
	}
	return a, nil
}

// handleConfirmKeys processes the exit dialog. With unsaved changes the
// operator chooses between saving, discarding, and cancelling.
func (a *App) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if a.dirty {
			if err := a.save(a.system); err != nil {
				a.showConfirm = false
				a.AddAlert(AlertWarning, "Save failed: "+err.Error())
				return a, nil
			}
		}
		a.quitting = true
		return a, tea.Quit
	case "n", "N":
		a.quitting = true
		return a, tea.Quit
	case "c", "C", "esc":
		a.showConfirm = false
	}
	return a, nil
}

// handlePatientKeys handles key presses in the patients module.
func (a *App) handlePatientKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDetail {
		p := a.rosterView.SelectedPatient()
		switch msg.String() {
		case "esc":
			a.showDetail = false
		case "e":
			if p != nil {
				a.patientForm = patviews.NewPatientForm(patviews.FormModeEdit)
				a.patientForm.SetPatient(p)
				a.showForm = true
				a.showDetail = false
			}
		case "r":
			if p != nil {
				a.promptAssignRoom(p)
			}
		case "s":
			if p != nil {
				a.promptSetStatus(p)
			}
		case "d":
			if p != nil {
				a.dischargePatient(p)
			}
		case "t":
			if p != nil {
				a.recordDeath(p)
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		a.rosterView.MoveUp()
	case "down", "j":
		a.rosterView.MoveDown()
	case "pgup":
		a.rosterView.PageUp()
	case "pgdown":
		a.rosterView.PageDown()
	case "enter":
		if a.rosterView.SelectedPatient() != nil {
			a.showDetail = true
		}
	case "a":
		a.patientForm = patviews.NewPatientForm(patviews.FormModeAdd)
		a.showForm = true
	case "e":
		if p := a.rosterView.SelectedPatient(); p != nil {
			a.patientForm = patviews.NewPatientForm(patviews.FormModeEdit)
			a.patientForm.SetPatient(p)
			a.showForm = true
		}
	case "d":
		if p := a.rosterView.SelectedPatient(); p != nil {
			a.dischargePatient(p)
		}
	case "x":
		if p := a.rosterView.SelectedPatient(); p != nil {
			a.removePatient(p)
		}
	case "/", "s":
		a.searchMode = true
		a.searchInput = a.rosterView.Search()
	}

	return a, nil
}

// handleStaffingKeys handles key presses in the staffing module.
func (a *App) handleStaffingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		a.directoryView.MoveUp()
	case "down", "j":
		a.directoryView.MoveDown()
	case "pgup":
		a.directoryView.PageUp()
	case "pgdown":
		a.directoryView.PageDown()
	case "a":
		a.staffForm = staffviews.NewStaffForm(staffviews.FormModeAdd)
		a.showForm = true
	case "e":
		if dept, member := a.directoryView.Selected(); member != nil {
			a.staffForm = staffviews.NewStaffForm(staffviews.FormModeEdit)
			a.staffForm.SetStaff(dept, member)
			a.showForm = true
		}
	case "x":
		a.removeSelectedStaff()
	case "n":
		a.promptNewDepartment()
	case "X":
		a.promptRemoveDepartment()
	case "p":
		a.promptAssignDoctor()
	}

	return a, nil
}

// handleBillingKeys handles key presses in the billing module.
func (a *App) handleBillingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		a.ledgerView.MoveUp()
	case "down", "j":
		a.ledgerView.MoveDown()
	case "pgup":
		a.ledgerView.PageUp()
	case "pgdown":
		a.ledgerView.PageDown()
	case "p":
		a.markSelectedBillPaid()
	case "a":
		a.promptAddProcedure()
	case "g":
		a.promptNewBill()
	case "G":
		a.promptBillProcedures()
	}

	return a, nil
}

// handleReportKeys handles key presses in the reports module.
func (a *App) handleReportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "w":
		textPath, excelPath, err := export.WriteReports(a.config.Storage.OutputDir, a.config.Hospital.Name, a.system)
		if err != nil {
			a.AddAlert(AlertWarning, "Report export failed: "+err.Error())
		} else {
			a.logger.Info("reports written", "text", textPath, "excel", excelPath)
			a.AddAlert(AlertInfo, "Reports written to "+a.config.Storage.OutputDir)
		}
	case "S":
		a.saveNow()
	}
	return a, nil
}

// handleFormKeys routes keys to whichever form is active.
func (a *App) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.patientForm != nil {
		a.patientForm.HandleKey(key)
		if a.patientForm.IsCancelled() {
			a.patientForm = nil
			a.showForm = false
			return a, nil
		}
		if a.patientForm.IsSubmitted() {
			a.savePatientForm()
		}
		return a, nil
	}

	if a.staffForm != nil {
		a.staffForm.HandleKey(key)
		if a.staffForm.IsCancelled() {
			a.staffForm = nil
			a.showForm = false
			return a, nil
		}
		if a.staffForm.IsSubmitted() {
			a.saveStaffForm()
		}
		return a, nil
	}

	a.showForm = false
	return a, nil
}

// handleSearchKeys handles key presses in search mode.
func (a *App) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc":
		a.searchMode = false
		a.searchInput = ""
		a.rosterView.SetSearch("")
		a.rosterView.Load()
	case "enter":
		a.searchMode = false
		a.rosterView.SetSearch(a.searchInput)
		a.rosterView.Load()
	case "backspace":
		if len(a.searchInput) > 0 {
			a.searchInput = a.searchInput[:len(a.searchInput)-1]
		}
	default:
		if len(key) == 1 {
			a.searchInput += key
		}
	}

	return a, nil
}

// handlePromptKeys handles key presses while an inline prompt is open.
func (a *App) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := a.prompt
	switch key := msg.String(); key {
	case "esc":
		a.prompt = nil
	case "tab", "down":
		p.inputs[p.focusIndex].Focus(false)
		p.focusIndex = (p.focusIndex + 1) % len(p.inputs)
		p.inputs[p.focusIndex].Focus(true)
	case "shift+tab", "up":
		p.inputs[p.focusIndex].Focus(false)
		p.focusIndex--
		if p.focusIndex < 0 {
			p.focusIndex = len(p.inputs) - 1
		}
		p.inputs[p.focusIndex].Focus(true)
	case "enter":
		if p.focusIndex < len(p.inputs)-1 {
			p.inputs[p.focusIndex].Focus(false)
			p.focusIndex++
			p.inputs[p.focusIndex].Focus(true)
			return a, nil
		}
		if err := p.apply(p.values()); err != nil {
			a.AddAlert(AlertWarning, err.Error())
			if hospital.IsValidation(err) {
				// Input mistake: keep the prompt open for correction.
				return a, nil
			}
		} else {
			a.markDirty()
		}
		a.prompt = nil
		a.refreshViews()
	default:
		p.inputs[p.focusIndex].HandleKey(key)
	}
	return a, nil
}

// --- patient operations ---

func (a *App) savePatientForm() {
	data, err := a.patientForm.Data()
	if err != nil {
		a.AddAlert(AlertWarning, err.Error())
		a.patientForm = nil
		a.showForm = false
		return
	}

	if existing := a.patientForm.Patient(); existing != nil {
		update := hospital.PatientUpdate{
			Name:      &data.Name,
			Age:       &data.Age,
			Condition: &data.Condition,
			NextOfKin: &data.NextOfKin,
		}
		if data.Insurance != nil {
			update.Insurance = data.Insurance
		} else if existing.Insurance != nil {
			update.ClearInsurance = true
		}
		key := fmt.Sprintf("%d", existing.PatientNumber)
		if err := a.system.EditPatient(key, update); err != nil {
			a.AddAlert(AlertWarning, "Edit failed: "+err.Error())
		} else {
			if data.Room != nil {
				if err := a.system.AssignRoom(key, *data.Room); err != nil {
					a.AddAlert(AlertWarning, "Room not changed: "+err.Error())
				}
			}
			a.markDirty()
			a.AddAlert(AlertInfo, "Patient updated")
		}
	} else {
		p, err := a.system.AddPatient(hospital.AddPatientInput{
			Name:      data.Name,
			Age:       data.Age,
			Condition: data.Condition,
			Room:      data.Room,
			NextOfKin: data.NextOfKin,
			Insurance: data.Insurance,
		})
		if err != nil {
			a.AddAlert(AlertWarning, "Admission failed: "+err.Error())
		} else {
			a.markDirty()
			a.logger.Info("patient admitted", "patient_number", p.PatientNumber, "name", p.Name)
			a.AddAlert(AlertInfo, fmt.Sprintf("Admitted %s as patient %d", p.Name, p.PatientNumber))
		}
	}

	a.patientForm = nil
	a.showForm = false
	a.refreshViews()
}

func (a *App) dischargePatient(p *models.Patient) {
	if err := a.system.Discharge(fmt.Sprintf("%d", p.PatientNumber)); err != nil {
		a.AddAlert(AlertWarning, "Discharge failed: "+err.Error())
		return
	}
	a.markDirty()
	a.logger.Info("patient discharged", "patient_number", p.PatientNumber)
	a.AddAlert(AlertInfo, fmt.Sprintf("Discharged patient %d", p.PatientNumber))
	a.showDetail = false
	a.refreshViews()
}

func (a *App) recordDeath(p *models.Patient) {
	if err := a.system.RecordDeath(fmt.Sprintf("%d", p.PatientNumber), time.Now()); err != nil {
		a.AddAlert(AlertWarning, "Death not recorded: "+err.Error())
		return
	}
	a.markDirty()
	a.logger.Info("death recorded", "patient_number", p.PatientNumber)
	a.AddAlert(AlertInfo, fmt.Sprintf("Death recorded for patient %d", p.PatientNumber))
	a.showDetail = false
	a.refreshViews()
}

func (a *App) removePatient(p *models.Patient) {
	if err := a.system.RemovePatient(fmt.Sprintf("%d", p.PatientNumber)); err != nil {
		a.AddAlert(AlertWarning, "Remove failed: "+err.Error())
		return
	}
	a.markDirty()
	a.AddAlert(AlertInfo, fmt.Sprintf("Removed patient %d", p.PatientNumber))
	a.refreshViews()
}

func (a *App) promptAssignRoom(p *models.Patient) {
	key := fmt.Sprintf("%d", p.PatientNumber)
	a.prompt = newPrompt(
		fmt.Sprintf("ASSIGN ROOM - PATIENT %d", p.PatientNumber),
		func(values []string) error {
			room, err := parsePositiveInt(values[0], "room")
			if err != nil {
				return err
			}
			return a.system.AssignRoom(key, room)
		},
		components.NewInput("Room").SetRequired(true).SetWidth(6),
	)
}

func (a *App) promptSetStatus(p *models.Patient) {
	key := fmt.Sprintf("%d", p.PatientNumber)
	a.prompt = newPrompt(
		fmt.Sprintf("SET STATUS - PATIENT %d (%s)", p.PatientNumber, p.Status),
		func(values []string) error {
			return a.system.SetStatus(key, models.PatientStatus(values[0]))
		},
		components.NewInput("Status").SetRequired(true).SetWidth(12).SetPlaceholder("normal/surgery/emergency"),
	)
}

// --- staffing operations ---

func (a *App) saveStaffForm() {
	data, err := a.staffForm.Data()
	if err != nil {
		a.AddAlert(AlertWarning, err.Error())
		a.staffForm = nil
		a.showForm = false
		return
	}

	if existing := a.staffForm.Staff(); existing != nil {
		update := hospital.StaffUpdate{
			Name:      &data.Name,
			Age:       &data.Age,
			Specialty: &data.Specialty,
		}
		if err := a.system.EditStaff(data.Department, existing.ID, update); err != nil {
			a.AddAlert(AlertWarning, "Edit failed: "+err.Error())
		} else {
			a.markDirty()
			a.AddAlert(AlertInfo, "Staff record updated")
		}
	} else {
		member, err := a.system.AddStaff(data.Department, hospital.AddStaffInput{
			Name:      data.Name,
			Age:       data.Age,
			Role:      data.Role,
			Specialty: data.Specialty,
		})
		if err != nil {
			a.AddAlert(AlertWarning, "Hire failed: "+err.Error())
		} else {
			a.markDirty()
			a.logger.Info("staff hired", "staff_id", member.ID, "name", member.Name, "department", data.Department)
			a.AddAlert(AlertInfo, "Hired "+member.Name)
		}
	}

	a.staffForm = nil
	a.showForm = false
	a.refreshViews()
}

func (a *App) removeSelectedStaff() {
	dept, member := a.directoryView.Selected()
	if member == nil {
		return
	}
	if err := a.system.RemoveStaff(dept, member.ID); err != nil {
		a.AddAlert(AlertWarning, "Remove failed: "+err.Error())
		return
	}
	a.markDirty()
	a.AddAlert(AlertInfo, "Removed "+member.Name+" from "+dept)
	a.refreshViews()
}

func (a *App) promptNewDepartment() {
	a.prompt = newPrompt(
		"NEW DEPARTMENT",
		func(values []string) error {
			_, err := a.system.AddDepartment(values[0])
			return err
		},
		components.NewInput("Name").SetRequired(true).SetWidth(25),
	)
}

func (a *App) promptRemoveDepartment() {
	a.prompt = newPrompt(
		"REMOVE DEPARTMENT",
		func(values []string) error {
			return a.system.RemoveDepartment(values[0])
		},
		components.NewInput("Name").SetRequired(true).SetWidth(25),
	)
}

func (a *App) promptAssignDoctor() {
	dept, member := a.directoryView.Selected()
	if member == nil {
		a.AddAlert(AlertWarning, "Select a doctor first")
		return
	}
	a.prompt = newPrompt(
		fmt.Sprintf("ASSIGN PATIENT TO %s", strings.ToUpper(member.Name)),
		func(values []string) error {
			return a.system.AssignPatientToDoctor(values[0], dept, member.ID)
		},
		components.NewInput("Patient").SetRequired(true).SetWidth(20).SetPlaceholder("number or name"),
	)
}

// --- billing operations ---

func (a *App) markSelectedBillPaid() {
	patient, bill := a.ledgerView.Selected()
	if bill == nil {
		return
	}
	if err := a.system.MarkBillPaid(fmt.Sprintf("%d", patient.PatientNumber), bill.ID); err != nil {
		a.AddAlert(AlertWarning, "Payment failed: "+err.Error())
		return
	}
	a.markDirty()
	a.AddAlert(AlertInfo, fmt.Sprintf("Bill %d marked paid", bill.ID))
	a.refreshViews()
}

func (a *App) promptAddProcedure() {
	a.prompt = newPrompt(
		"ADD PROCEDURE",
		func(values []string) error {
			cost, err := parseAmount(values[2], "cost")
			if err != nil {
				return err
			}
			_, err = a.system.AddProcedure(values[0], values[1], cost)
			return err
		},
		components.NewInput("Patient").SetRequired(true).SetWidth(20).SetPlaceholder("number or name"),
		components.NewInput("Procedure").SetRequired(true).SetWidth(25),
		components.NewInput("Cost").SetRequired(true).SetWidth(10),
	)
}

func (a *App) promptNewBill() {
	a.prompt = newPrompt(
		"NEW BILL",
		func(values []string) error {
			amount, err := parseAmount(values[1], "amount")
			if err != nil {
				return err
			}
			_, err = a.system.GenerateBill(values[0], amount, values[2])
			return err
		},
		components.NewInput("Patient").SetRequired(true).SetWidth(20).SetPlaceholder("number or name"),
		components.NewInput("Amount").SetRequired(true).SetWidth(10),
		components.NewInput("Description").SetWidth(30),
	)
}

func (a *App) promptBillProcedures() {
	a.prompt = newPrompt(
		"BILL UNBILLED PROCEDURES",
		func(values []string) error {
			bills, err := a.system.GenerateBillsFromProcedures(values[0], nil)
			if err != nil {
				return err
			}
			a.AddAlert(AlertInfo, fmt.Sprintf("Created %d bill(s)", len(bills)))
			return nil
		},
		components.NewInput("Patient").SetRequired(true).SetWidth(20).SetPlaceholder("number or name"),
	)
}

// --- shared helpers ---

func (a *App) markDirty() {
	a.dirty = true
}

func (a *App) saveNow() {
	if err := a.save(a.system); err != nil {
		a.AddAlert(AlertWarning, "Save failed: "+err.Error())
		return
	}
	a.dirty = false
	a.AddAlert(AlertInfo, "Records saved")
}

func (a *App) refreshViews() {
	a.rosterView.Load()
	a.directoryView.Load()
	a.ledgerView.Load()
}

func parsePositiveInt(s, field string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q", field, s)
	}
	return n, nil
}

func parseAmount(s, field string) (float64, error) {
	var v float64
	if _, err := fmt.Sscanf(s, "%g", &v); err != nil {
		return 0, fmt.Errorf("invalid %s %q", field, s)
	}
	return v, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render(a.config.Hospital.Name + " records system shutting down...")
	}

	if !a.authenticated {
		return a.renderLogin()
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	contentHeight := a.height - 6 // header, alert, footer
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderLogin renders the credential gate.
func (a *App) renderLogin() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ " + strings.ToUpper(a.config.Hospital.Name) + " ═══"))
	b.WriteString("\n")
	b.WriteString(a.theme.Subtitle.Render("PATIENT MANAGEMENT SYSTEM v" + Version))
	b.WriteString("\n\n")
	b.WriteString(a.loginUser.Render())
	b.WriteString("\n")
	b.WriteString(a.loginPass.Render())
	b.WriteString("\n\n")

	if a.loginErr != "" {
		b.WriteString(a.theme.Error.Render(a.loginErr))
		b.WriteString("\n\n")
	}

	b.WriteString(a.theme.Muted.Render("Enter:Login  Tab:Switch Field  Ctrl+C:Quit"))

	dialog := a.theme.Box.Render(b.String())

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := fmt.Sprintf("%s PMS v%s", strings.ToUpper(a.config.Hospital.Name), Version)

	report := a.system.GenerateReport()
	info := fmt.Sprintf("PATIENTS: %d | STAFF: %d | NEXT #: %d",
		report.TotalPatients,
		report.TotalStaff,
		a.system.NextPatientNumber(),
	)

	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(info) - 2
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

// renderAlertBar renders the status line.
func (a *App) renderAlertBar() string {
	timeStr := time.Now().Format("2006-01-02 15:04")

	var alertText string
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		switch alert.Level {
		case AlertWarning:
			alertText = a.theme.Alert.Render("WARNING: " + alert.Message)
		default:
			alertText = a.theme.Value.Render(alert.Message)
		}
	} else {
		alertText = a.theme.Muted.Render("Ready")
	}

	saved := a.theme.Muted.Render("saved")
	if a.dirty {
		saved = a.theme.Warning.Render("unsaved changes")
	}

	divider := a.theme.StatusDivider.Render()
	return a.theme.Value.Render(timeStr) + divider + saved + divider + alertText
}

// renderContent renders the main content area based on current module.
func (a *App) renderContent(height int) string {
	content := a.getModuleContent()

	contentWidth := a.width
	if contentWidth > MaxContentWidth {
		contentWidth = MaxContentWidth
	}

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	contentStyle := lipgloss.NewStyle().
		Width(contentWidth)

	return style.Render(contentStyle.Render(content))
}

// getModuleContent returns the content for the current module.
func (a *App) getModuleContent() string {
	if a.prompt != nil {
		return a.renderPrompt()
	}

	switch a.currentModule {
	case ModuleDashboard:
		return a.renderDashboard()
	case ModulePatients:
		return a.renderPatients()
	case ModuleStaffing:
		return a.renderStaffing()
	case ModuleBilling:
		return a.renderBilling()
	case ModuleReports:
		return a.renderReports()
	case ModuleHelp:
		return a.renderHelp()
	default:
		return ""
	}
}

// renderPrompt renders the active inline prompt.
func (a *App) renderPrompt() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ " + a.prompt.title + " ═══"))
	b.WriteString("\n\n")
	for _, in := range a.prompt.inputs {
		b.WriteString(in.Render())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Enter:Confirm  Esc:Cancel"))

	return b.String()
}

// renderPatients renders the patients module.
func (a *App) renderPatients() string {
	if a.showForm && a.patientForm != nil {
		return a.patientForm.Render()
	}

	if a.showDetail {
		return a.rosterView.RenderDetail(a.rosterView.SelectedPatient())
	}

	var searchBar string
	if a.searchMode {
		searchBar = a.theme.Label.Render("SEARCH: ") +
			a.theme.Accent.Render(a.searchInput) +
			a.theme.Accent.Render("_") + "\n\n"
	}

	return searchBar + a.rosterView.Render(a.width)
}

// renderStaffing renders the staffing module.
func (a *App) renderStaffing() string {
	if a.showForm && a.staffForm != nil {
		return a.staffForm.Render()
	}
	return a.directoryView.Render(a.width)
}

// renderBilling renders the billing module.
func (a *App) renderBilling() string {
	return a.ledgerView.Render(a.width)
}

// renderReports renders the live system report.
func (a *App) renderReports() string {
	var b strings.Builder
	if err := export.WriteText(&b, a.config.Hospital.Name, a.system.GenerateReport()); err != nil {
		return a.theme.Error.Render("Report error: " + err.Error())
	}
	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("w:Write Reports to Disk  S:Save Records"))
	return b.String()
}

// renderDashboard renders the main dashboard view.
func (a *App) renderDashboard() string {
	var b strings.Builder

	report := a.system.GenerateReport()

	b.WriteString(a.theme.Title.Render("═══ HOSPITAL STATUS OVERVIEW ═══"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("PATIENTS"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Total:          %d\n", report.TotalPatients))
	for _, status := range []models.PatientStatus{
		models.StatusNormal, models.StatusSurgery, models.StatusEmergency,
		models.StatusDischarged, models.StatusDeceased,
	} {
		if count := report.PatientsByStatus[status]; count > 0 {
			b.WriteString(fmt.Sprintf("  %-15s %d\n", status.String()+":", count))
		}
	}
	b.WriteString(fmt.Sprintf("  Occupied Rooms: %d\n", len(report.OccupiedRooms)))
	b.WriteString("\n")

	b.WriteString(a.theme.Subtitle.Render("STAFFING"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Departments: %d\n", len(report.Departments)))
	b.WriteString(fmt.Sprintf("  Staff:       %d (%d doctors)\n", report.TotalStaff, report.TotalDoctors))
	b.WriteString("\n")

	b.WriteString(a.theme.Subtitle.Render("BILLING"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Outstanding: $%.2f (%d bills)\n", report.Billing.OutstandingTotal, report.Billing.UnpaidCount))
	b.WriteString(fmt.Sprintf("  Collected:   $%.2f (%d bills)\n", report.Billing.PaidTotal, report.Billing.PaidCount))
	if report.Procedures.Unbilled > 0 {
		b.WriteString("  " + a.theme.Warning.Render(fmt.Sprintf("Unbilled procedures: %d", report.Procedures.Unbilled)) + "\n")
	}

	return b.String()
}

// renderHelp renders the help screen.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("NAVIGATION"))
	b.WriteString("\n\n")

	navItems := [][2]string{
		{"F1", "Help"},
		{"F2", "Dashboard"},
		{"F3", "Patient Roster"},
		{"F4", "Staff Directory"},
		{"F5", "Billing Ledger"},
		{"F6", "Reports"},
		{"F10", "Quit"},
	}

	for _, item := range navItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Subtitle.Render("CONTROLS"))
	b.WriteString("\n\n")

	ctrlItems := [][2]string{
		{"Up/Down", "Navigate"},
		{"Enter", "Select"},
		{"Esc", "Back/Cancel"},
		{"/", "Search"},
		{"Tab", "Next field"},
		{"PgUp/Dn", "Page navigation"},
	}

	for _, item := range ctrlItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderConfirmDialog renders the exit dialog.
func (a *App) renderConfirmDialog(height int) string {
	body := a.theme.Base.Render("Exit the records system?") + "\n\n"
	if a.dirty {
		body = a.theme.Warning.Render("There are unsaved changes.") + "\n\n" +
			a.theme.Base.Render("Save before exiting?") + "\n\n" +
			a.theme.Label.Render("[Y]es, save  [N]o, discard  [C]ancel")
	} else {
		body += a.theme.Label.Render("[Y]es  [C]ancel")
	}

	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" + body,
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	separator := a.theme.DrawHorizontalLine(a.width)
	return separator + "\n" + a.theme.Footer.Render(a.keys.StatusBarHelp())
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}}, a.alerts...)

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

// Run starts the TUI application.
func Run(ctx context.Context, sys *hospital.System, cfg *config.Config, gate *auth.Gate, save SaveFunc, logger *slog.Logger) error {
	app := New(sys, cfg, gate, save, logger)

	p := tea.NewProgram(app, tea.WithAltScreen())

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
