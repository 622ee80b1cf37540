// Package tui provides the interactive drafting wizard. It walks the
// user from position details through duties input to a generated,
// canonically rendered document.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openpd/pdraft/internal/adapters/driving/tui/styles"
	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/core/ports/driven"
	"github.com/openpd/pdraft/internal/serialise"
)

// WizardStep tracks the current step in the wizard.
type WizardStep int

const (
	StepIntake WizardStep = iota
	StepDuties
	StepDrafting
	StepReview
)

// Intake field indexes.
const (
	fieldSeries = iota
	fieldTitle
	fieldAgency
	fieldOrganization
	fieldGrade
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Job Series",
	"Position Title",
	"Agency",
	"Organization",
	"GS Grade (optional)",
}

// App is the drafting wizard following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	step WizardStep

	// Intake inputs, one per field.
	inputs     [fieldCount]textinput.Model
	focusIndex int

	// Duties input.
	duties textarea.Model

	// Classification hint from the recommender.
	recommendation *domain.Recommendation
	recommending   bool

	// Drafting state.
	spinner spinner.Model

	// Review state.
	review   viewport.Model
	document string
	outPath  string
	saved    bool

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// draftCompleted carries the rendered document or the failure.
type draftCompleted struct {
	document string
	err      error
}

// recommendCompleted carries a classification recommendation.
type recommendCompleted struct {
	rec *domain.Recommendation
	err error
}

// draftSaved reports the outcome of writing the document to disk.
type draftSaved struct {
	err error
}

// NewApp creates the drafting wizard with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	a := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		step:   StepIntake,
	}

	placeholders := [fieldCount]string{
		"0301", "Program Analyst", "Department of the Interior",
		"Office of Policy Analysis", "GS-12",
	}
	for i := range a.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		a.inputs[i] = ti
	}
	a.inputs[fieldSeries].CharLimit = 4

	a.duties = textarea.New()
	a.duties.Placeholder = "Describe the major duties of the position..."
	a.duties.SetHeight(10)

	a.spinner = spinner.New()
	a.spinner.Spinner = spinner.Dot
	a.spinner.Style = s.Subtitle

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithOutPath sets the path the reviewed document is saved to.
func (a *App) WithOutPath(path string) *App {
	a.outPath = path
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("pdraft - Position Description Drafting"),
		a.inputs[fieldSeries].Focus(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.duties.SetWidth(msg.Width - 4)
		a.review = viewport.New(msg.Width, msg.Height-4)
		if a.document != "" {
			a.review.SetContent(a.document)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKeyMsg(msg)

	case draftCompleted:
		if msg.err != nil {
			a.err = msg.err
			a.step = StepDuties
			return a, nil
		}
		a.document = msg.document
		a.review.SetContent(msg.document)
		a.step = StepReview
		return a, nil

	case recommendCompleted:
		a.recommending = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.recommendation = msg.rec
		return a, nil

	case draftSaved:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.saved = true
		return a, nil

	case spinner.TickMsg:
		if a.step != StepDrafting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.step {
	case StepIntake:
		return a.updateIntake(msg)
	case StepDuties:
		return a.updateDuties(msg)
	case StepDrafting:
		// Drafting cannot be cancelled except by quitting.
		return a, nil
	case StepReview:
		return a.updateReview(msg)
	}
	return a, nil
}

func (a *App) updateIntake(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return a, tea.Quit

	case "enter", "tab", "down":
		if msg.String() == "enter" && a.focusIndex == fieldCount-1 {
			a.err = nil
			a.step = StepDuties
			a.inputs[a.focusIndex].Blur()
			return a, a.duties.Focus()
		}
		return a, a.focusField((a.focusIndex + 1) % fieldCount)

	case "shift+tab", "up":
		return a, a.focusField((a.focusIndex + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	a.inputs[a.focusIndex], cmd = a.inputs[a.focusIndex].Update(msg)
	return a, cmd
}

func (a *App) focusField(index int) tea.Cmd {
	a.inputs[a.focusIndex].Blur()
	a.focusIndex = index
	return a.inputs[a.focusIndex].Focus()
}

func (a *App) updateDuties(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.duties.Blur()
		a.step = StepIntake
		return a, a.inputs[a.focusIndex].Focus()

	case "ctrl+r":
		if strings.TrimSpace(a.duties.Value()) == "" {
			a.err = fmt.Errorf("enter duties before requesting a recommendation")
			return a, nil
		}
		a.err = nil
		a.recommending = true
		return a, a.recommendCmd(a.duties.Value())

	case "ctrl+d":
		if strings.TrimSpace(a.duties.Value()) == "" {
			a.err = fmt.Errorf("duties text is required")
			return a, nil
		}
		a.err = nil
		a.step = StepDrafting
		a.duties.Blur()
		return a, tea.Batch(a.spinner.Tick, a.draftCmd())
	}

	var cmd tea.Cmd
	a.duties, cmd = a.duties.Update(msg)
	return a, cmd
}

func (a *App) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return a, tea.Quit

	case "s":
		if a.outPath == "" || a.document == "" {
			return a, nil
		}
		return a, a.saveCmd()

	case "e":
		// Back to duties for another round.
		a.saved = false
		a.step = StepDuties
		return a, a.duties.Focus()
	}

	var cmd tea.Cmd
	a.review, cmd = a.review.Update(msg)
	return a, cmd
}

// draftCmd generates a draft and renders it canonically through a fresh
// session, so the user reviews exactly what would be written to disk.
func (a *App) draftCmd() tea.Cmd {
	req := driven.GenerateRequest{
		JobSeries:     strings.TrimSpace(a.inputs[fieldSeries].Value()),
		PositionTitle: strings.TrimSpace(a.inputs[fieldTitle].Value()),
		Agency:        strings.TrimSpace(a.inputs[fieldAgency].Value()),
		Organization:  strings.TrimSpace(a.inputs[fieldOrganization].Value()),
		GSGrade:       strings.TrimSpace(a.inputs[fieldGrade].Value()),
		Duties:        a.duties.Value(),
	}

	return func() tea.Msg {
		raw, err := a.ports.Drafter.Draft(a.ctx, req)
		if err != nil {
			return draftCompleted{err: err}
		}

		session := a.ports.NewSession()
		session.LoadText(raw)
		doc, err := session.Render(serialise.ModeGenerated)
		if err != nil {
			return draftCompleted{err: err}
		}
		return draftCompleted{document: doc}
	}
}

func (a *App) recommendCmd(duties string) tea.Cmd {
	return func() tea.Msg {
		rec, err := a.ports.Drafter.Recommend(a.ctx, duties)
		return recommendCompleted{rec: rec, err: err}
	}
}

func (a *App) saveCmd() tea.Cmd {
	path, document := a.outPath, a.document
	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(document+"\n"), 0o600); err != nil {
			return draftSaved{err: fmt.Errorf("saving draft: %w", err)}
		}
		return draftSaved{}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.step {
	case StepIntake:
		return a.viewIntake()
	case StepDuties:
		return a.viewDuties()
	case StepDrafting:
		return a.viewDrafting()
	case StepReview:
		return a.viewReview()
	default:
		return a.viewIntake()
	}
}

func (a *App) viewIntake() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("New Position Description"))
	b.WriteString("\n\n")

	for i := range a.inputs {
		b.WriteString(a.styles.Label.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(a.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[tab] next field  [enter] continue  [esc] quit"))
	return b.String()
}

func (a *App) viewDuties() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Major Duties"))
	b.WriteString("\n\n")
	b.WriteString(a.duties.View())
	b.WriteString("\n")

	if a.recommending {
		b.WriteString(a.styles.Muted.Render("Requesting recommendation..."))
		b.WriteString("\n")
	} else if rec := a.recommendation; rec != nil && len(rec.Recommendations) > 0 {
		top := rec.Recommendations[0]
		hint := fmt.Sprintf("Recommended: GS-%s %s, grade %s", top.Code, top.Title, rec.GSGrade)
		b.WriteString(a.styles.Subtitle.Render(hint))
		b.WriteString("\n")
	}

	if a.err != nil {
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[ctrl+d] generate draft  [ctrl+r] recommend series  [esc] back"))
	return b.String()
}

func (a *App) viewDrafting() string {
	return fmt.Sprintf("\n %s %s\n",
		a.spinner.View(),
		a.styles.Normal.Render("Generating draft..."))
}

func (a *App) viewReview() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Draft Review"))
	b.WriteString("\n")
	b.WriteString(a.review.View())
	b.WriteString("\n")

	if a.saved {
		b.WriteString(a.styles.Success.Render("Saved to " + a.outPath))
		b.WriteString("  ")
	} else if a.err != nil {
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
		b.WriteString("  ")
	}

	hints := "[e] edit duties  [q] quit"
	if a.outPath != "" {
		hints = "[s] save  " + hints
	}
	b.WriteString(a.styles.Help.Render(hints))
	return b.String()
}

// Run starts the wizard.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Step returns the current wizard step.
func (a *App) Step() WizardStep {
	return a.step
}

// Document returns the rendered draft under review.
func (a *App) Document() string {
	return a.document
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.review = viewport.New(width, height-4)
}
