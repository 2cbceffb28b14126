package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/vibfd/internal/vib"
)

// MaxExplorerSteps bounds interactive refinement so that the terminal plot
// and a convergence study stay responsive on every keypress.
const MaxExplorerSteps = 2048

const explorerTrials = 3

// Explorer is a Bubble Tea model that re-solves a scheme each time the mesh
// is refined or coarsened.
type Explorer struct {
	solver *vib.Solver
	tol    float64
	u      []float64
	exact  []float64
	l2     float64
	report *vib.Report
	err    error
	width  int
}

// NewExplorer evaluates the solver on its current mesh.
func NewExplorer(s *vib.Solver, tol float64) *Explorer {
	e := &Explorer{solver: s, tol: tol, width: plotWidth}
	e.evaluate()
	return e
}

func (e *Explorer) evaluate() {
	e.report = nil
	e.u, e.err = e.solver.Solve()
	if e.err != nil {
		return
	}
	e.exact = e.solver.Exact()
	e.l2, e.err = vib.L2Error(e.u, e.exact, e.solver.Dt())
}

func (e *Explorer) setSteps(nt int) {
	if nt < 1 || nt > MaxExplorerSteps {
		return
	}
	if err := e.solver.SetMesh(nt); err != nil {
		e.err = err
		return
	}
	e.evaluate()
}

// rates runs the study on private meshes so the explorer's mesh is kept.
// The finest study mesh stays within MaxExplorerSteps.
func (e *Explorer) rates() {
	n0 := min(e.solver.Nt(), MaxExplorerSteps>>explorerTrials)
	e.report, e.err = vib.ConvergenceRatesParallel(context.Background(),
		e.solver.Scheme(), e.solver.Params(), explorerTrials, n0)
}

func (e *Explorer) Init() tea.Cmd { return nil }

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return e, tea.Quit
		case "+", "=", "up", "k":
			e.setSteps(2 * e.solver.Nt())
		case "-", "down", "j":
			e.setSteps(e.solver.Nt() / 2)
		case "r":
			e.rates()
		}
	case tea.WindowSizeMsg:
		e.width = msg.Width
	}
	return e, nil
}

func (e *Explorer) View() string {
	var b strings.Builder

	b.WriteString(Title.Render("vibfd explorer"))
	b.WriteString("\n\n")
	b.WriteString(RenderSolution(e.solver.Name(), e.solver.Nt(), e.solver.Dt(), e.l2))
	b.WriteString("\n")
	b.WriteString(Separator(min(e.width, plotWidth)))
	b.WriteString("\n\n")

	if e.err != nil {
		b.WriteString(Fail.Render(e.err.Error()))
		b.WriteString("\n\n")
	} else {
		b.WriteString(PlotSolution(e.solver.Name(), e.u, e.exact))
		b.WriteString("\n\n")
	}

	if e.report != nil {
		b.WriteString(RenderReport(e.report, e.tol))
		b.WriteString("\n\n")
	}

	b.WriteString(KeyHint.Render(fmt.Sprintf("+/- refine/coarsen (1..%d)   r convergence study   q quit", MaxExplorerSteps)))
	b.WriteString("\n")
	return b.String()
}

// RunExplorer starts the interactive explorer on s.
func RunExplorer(s *vib.Solver, tol float64) error {
	_, err := tea.NewProgram(NewExplorer(s, tol), tea.WithAltScreen()).Run()
	return err
}
