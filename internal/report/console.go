package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harmonicstack/harmonicstack/pkg/types"
)

// Console renders reports as styled text blocks.
type Console struct {
	w      io.Writer
	title  lipgloss.Style
	name   lipgloss.Style
	value  lipgloss.Style
	total  lipgloss.Style
	indent string
}

// NewConsole returns a Console writing to w. Colours are only emitted when w
// is a terminal that supports them.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:      w,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFC107")),
		name:   r.NewStyle().Foreground(lipgloss.Color("#2196F3")),
		value:  r.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		total:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		indent: "   ",
	}
}

// Report writes the status block for one report.
func (c *Console) Report(rep types.Report) error {
	var b strings.Builder
	b.WriteString(c.title.Render(titleFor(rep.Core)))
	b.WriteByte('\n')

	s := rep.Summary
	c.line(&b, "Current rate", c.value.Render(fmt.Sprintf("%d H/s", s.CurrentRate)))
	c.line(&b, "Improvement", c.value.Render(percent(s.ImprovementPercent)))
	for _, term := range orderedTerms(rep.Breakdown) {
		c.line(&b, label(term), c.value.Render(percent(rep.Breakdown[term])))
	}
	c.line(&b, "Total boost", c.total.Render(percent(rep.Breakdown.Total())))
	b.WriteByte('\n')

	_, err := io.WriteString(c.w, b.String())
	return err
}

// Summary writes a performance summary block.
func (c *Console) Summary(s types.Summary) error {
	var b strings.Builder
	b.WriteString(c.title.Render(fmt.Sprintf("%s performance summary", strings.ToUpper(s.Core))))
	b.WriteByte('\n')

	c.line(&b, "Baseline", fmt.Sprintf("%d H/s", s.BaselineRate))
	c.line(&b, "Optimized", c.value.Render(fmt.Sprintf("%d H/s", s.CurrentRate)))
	c.line(&b, "Improvement", c.value.Render(percent(s.ImprovementPercent)))
	c.line(&b, "Absolute gain", fmt.Sprintf("+%d H/s", s.ImprovementAbsolute()))
	c.line(&b, "Optimization cycles", fmt.Sprintf("%d", s.OptimizationCycles))

	keys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.line(&b, k, fmt.Sprintf("%.4f", s.Extra[k]))
	}
	b.WriteByte('\n')

	_, err := io.WriteString(c.w, b.String())
	return err
}

func (c *Console) line(b *strings.Builder, name, value string) {
	b.WriteString(c.indent)
	b.WriteString(c.name.Render(name + ":"))
	b.WriteByte(' ')
	b.WriteString(value)
	b.WriteByte('\n')
}

func titleFor(core string) string {
	switch core {
	case "harmonic":
		return "MHM Optimization Active:"
	case "asic":
		return "ASIC Optimization Status:"
	default:
		return core + " status:"
	}
}

func percent(v float64) string {
	return fmt.Sprintf("+%.2f%%", v)
}
