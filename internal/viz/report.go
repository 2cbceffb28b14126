package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/vibfd/internal/vib"
)

// RenderReport formats a convergence report as a table. Each order is marked
// against the declared order using tol.
func RenderReport(r *vib.Report, tol float64) string {
	var b strings.Builder

	b.WriteString(Title.Render(fmt.Sprintf("convergence of %s", r.Scheme)))
	b.WriteString("  ")
	b.WriteString(Metric("declared order", fmt.Sprintf("%d", r.DeclaredOrder)))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-8s %-14s %-14s %-10s", "Nt", "dt", "L2 error", "order")
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n")

	for i := range r.Errors {
		nt := "-"
		if i < len(r.StepCounts) {
			nt = fmt.Sprintf("%d", r.StepCounts[i])
		}
		order := Subtle.Render("-")
		if i > 0 && i-1 < len(r.Orders) {
			order = styleOrder(r.Orders[i-1], r.DeclaredOrder, tol)
		}
		fmt.Fprintf(&b, "%-8s %-14.6e %-14.6e %s\n", nt, r.StepSizes[i], r.Errors[i], order)
	}

	b.WriteString("\n")
	switch {
	case len(r.Orders) == 0:
		b.WriteString(Subtle.Render("a single resolution gives no order estimate"))
	case r.Within(tol):
		b.WriteString(Pass.Render(fmt.Sprintf("PASS orders within %g of %d", tol, r.DeclaredOrder)))
	default:
		b.WriteString(Fail.Render(fmt.Sprintf("FAIL orders differ from %d by more than %g", r.DeclaredOrder, tol)))
	}

	return Panel.Render(b.String())
}

func styleOrder(order float64, declared int, tol float64) string {
	s := fmt.Sprintf("%.4f", order)
	if math.IsNaN(order) || math.Abs(order-float64(declared)) > tol {
		return Fail.Render(s)
	}
	return Pass.Render(s)
}

// RenderSolution summarizes a single evaluation.
func RenderSolution(scheme string, nt int, dt, l2 float64) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		Metric("scheme", scheme), "   ",
		Metric("Nt", fmt.Sprintf("%d", nt)), "   ",
		Metric("dt", fmt.Sprintf("%.4e", dt)), "   ",
		Metric("L2 error", fmt.Sprintf("%.4e", l2)),
	)
}
