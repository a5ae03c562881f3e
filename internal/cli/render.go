package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Simplici0/cupcost/internal/pricing"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorOrange    = lipgloss.Color("#DA702C")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
// All columns but the first are right-aligned.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	writeRule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	writeRule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		writeRule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				padded = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	writeRule("╰", "┴", "╯")

	return b.String()
}

// RenderResult renders the cost summary, the priced table and the expense list.
func RenderResult(r pricing.Result, currency string) string {
	var b strings.Builder

	summary := Table{
		Title:   "Cost per unit",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total monthly expenses", FormatMoney(r.TotalMonthlyExpenses, currency)},
			{"Raw material required", FormatQuantity(r.RawMaterialRequiredKg) + " kg"},
			{"Raw material cost / month", FormatMoney(r.RawMaterialCostPerMonth, currency)},
			{"Raw material cost / unit", FormatUnitCost(r.RawMaterialCostPerCup, currency)},
			{"Fixed cost / unit", FormatUnitCost(r.FixedCostPerCup, currency)},
			{"Base cost / unit", FormatUnitCost(r.BaseCostPerCup, currency)},
			{"Total monthly cost", FormatMoney(r.TotalMonthlyCost, currency)},
		},
	}
	b.WriteString(RenderTable(summary))
	b.WriteString("\n")

	if len(r.PricesWithGST) == 0 {
		b.WriteString(mutedStyle.Render("  No tax rates configured."))
		b.WriteString("\n")
	} else {
		prices := Table{
			Title:   "Price with GST",
			Headers: []string{"Rate", "GST", "Price", "Description"},
		}
		for _, p := range r.PricesWithGST {
			prices.Rows = append(prices.Rows, []string{
				FormatPercent(p.GSTRate),
				FormatUnitCost(p.GSTAmount, currency),
				FormatUnitCost(p.PriceWithGST, currency),
				p.Description,
			})
		}
		b.WriteString(RenderTable(prices))
	}

	if len(r.Expenses) > 0 {
		b.WriteString("\n")
		expenses := Table{
			Title:   "Monthly expenses",
			Headers: []string{"Name", "Amount", "Description"},
		}
		for _, e := range r.Expenses {
			expenses.Rows = append(expenses.Rows, []string{e.Name, FormatMoney(e.Amount, currency), e.Description})
		}
		b.WriteString(RenderTable(expenses))
	}

	if math.IsNaN(r.BaseCostPerCup) || math.IsInf(r.BaseCostPerCup, 0) {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("  Per-unit costs are undefined; check the monthly production."))
		b.WriteString("\n")
	}

	return b.String()
}
