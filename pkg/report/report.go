// Package report renders debate progress and results for the console or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cpunion/claim-debate/pkg/types"
	"github.com/cpunion/claim-debate/pkg/verdict"
)

var (
	primaryColor = lipgloss.Color("#5B8DEF")
	mutedColor   = lipgloss.Color("#6B7280")
	greenColor   = lipgloss.Color("#10B981")
	yellowColor  = lipgloss.Color("#F59E0B")
	redColor     = lipgloss.Color("#EF4444")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	labelStyle = lipgloss.NewStyle().Bold(true)

	roundStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1)

	statsStyle = lipgloss.NewStyle().Foreground(mutedColor)

	verdictBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(redColor)
)

func categoryStyle(c verdict.Category) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch c {
	case verdict.Faithful:
		return s.Foreground(greenColor)
	case verdict.PartiallyFaithful:
		return s.Foreground(yellowColor)
	case verdict.Mutation:
		return s.Foreground(redColor)
	default:
		return s.Foreground(mutedColor)
	}
}

// Printer writes human-readable progress to w.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Header prints the fact and claim under debate.
func (p *Printer) Header(fact, claim string) {
	fmt.Fprintln(p.w, titleStyle.Render("CLAIM FAITHFULNESS DEBATE"))
	fmt.Fprintf(p.w, "%s %s\n", labelStyle.Render("FACT: "), fact)
	fmt.Fprintf(p.w, "%s %s\n", labelStyle.Render("CLAIM:"), claim)
}

// Round prints the banner shown before a round's invocation.
func (p *Printer) Round(title string) {
	fmt.Fprintln(p.w, roundStyle.Render("=== "+title+" ==="))
}

// Statement prints one statement followed by its stats line.
func (p *Printer) Statement(st types.Statement) {
	label := st.Label
	if label == "" {
		label = st.Role.DisplayName()
	}
	fmt.Fprintf(p.w, "%s %s\n", labelStyle.Render("["+label+"]:"), st.Text)
	fmt.Fprintln(p.w, statsStyle.Render(Stats(st)))
}

// Verdict prints the parsed verdict box and the session total.
func (p *Printer) Verdict(res *types.Result, v verdict.Verdict) {
	fmt.Fprintln(p.w)
	p.ParsedVerdict(v)
	fmt.Fprintln(p.w, labelStyle.Render(fmt.Sprintf("Total cost: $%.6f", res.TotalCost)))
}

// ParsedVerdict prints only the verdict box.
func (p *Printer) ParsedVerdict(v verdict.Verdict) {
	fmt.Fprintln(p.w, verdictBox.Render(renderVerdict(v)))
}

// Persona prints one role and its system instruction.
func (p *Printer) Persona(role types.Role, instruction string) {
	fmt.Fprintln(p.w, roundStyle.Render(fmt.Sprintf("%s (%s)", role.DisplayName(), role)))
	fmt.Fprintln(p.w, strings.TrimSpace(instruction))
}

// Error prints a failure line.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, errorStyle.Render("Debate aborted: "+err.Error()))
}

// Stats formats latency, token usage and cost for one statement.
func Stats(st types.Statement) string {
	return fmt.Sprintf("[%.2fs | %d tokens | $%.6f]", st.Latency.Seconds(), st.TokensUsed, st.Cost)
}

func renderVerdict(v verdict.Verdict) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("VERDICT") + "  " + categoryStyle(v.Overall).Render(string(v.Overall)))
	b.WriteString("\n")

	scoreLine := func(name string, s verdict.Score) {
		fmt.Fprintf(&b, "\n%-20s %s", name, formatPercent(s.Value))
		if s.Explanation != "" {
			b.WriteString("  " + s.Explanation)
		}
	}
	scoreLine("Factual correctness", v.FactualCorrectness)
	scoreLine("Temporal accuracy", v.TemporalAccuracy)
	scoreLine("Completeness", v.Completeness)
	fmt.Fprintf(&b, "\n%-20s %s", "Confidence", formatPercent(v.Confidence))

	if v.Summary != "" {
		b.WriteString("\n\n" + v.Summary)
	}
	for _, prob := range v.Problems {
		b.WriteString("\n" + statsStyle.Render("! "+prob))
	}
	return b.String()
}

func formatPercent(n int) string {
	if n < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d%%", n)
}

// Output is the machine-readable form of a finished debate.
type Output struct {
	*types.Result
	Parsed verdict.Verdict `json:"parsed_verdict"`
}

// WriteJSON writes res and its parsed verdict as indented JSON.
func WriteJSON(w io.Writer, res *types.Result, v verdict.Verdict) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Output{Result: res, Parsed: v}); err != nil {
		return fmt.Errorf("report: encode result: %w", err)
	}
	return nil
}
