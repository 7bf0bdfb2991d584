package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-modular/internal/backtest"
	"github.com/rxtech-lab/argo-modular/internal/types"
)

var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle for field names.
	LabelStyle = lipgloss.NewStyle().Faint(true)

	// BoxStyle frames a single run report.
	BoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// renderReport formats one run report and its ledger summary.
func renderReport(report types.RunReport, summary string) string {
	lines := []string{
		TitleStyle.Render(report.Strategy.Name),
		field("Entry", report.Strategy.Entry),
		field("Exit", report.Strategy.Exit),
		field("Sizer", report.Strategy.PositionSize),
		field("Risk", report.Strategy.RiskGate),
		field("Symbols", strings.Join(report.Symbols, ", ")),
		field("Ticks", fmt.Sprintf("%d", report.Ticks)),
		field("Orders", fmt.Sprintf("%d", report.Orders)),
		field("Rejections", fmt.Sprintf("%d", report.Rejections)),
		field("Faults", fmt.Sprintf("%d", report.Faults)),
		field("Fees", fmt.Sprintf("%.2f", report.TotalFees)),
		field("Final Equity", fmt.Sprintf("%.2f", report.FinalEquity)),
	}

	if report.TradesFilePath != "" {
		lines = append(lines, field("Trades", report.TradesFilePath))
	}

	lines = append(lines, "", strings.TrimRight(summary, "\n"))

	return BoxStyle.Render(strings.Join(lines, "\n"))
}

func field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + value
}

// renderSweep formats one row per run for comparison.
func renderSweep(results []backtest.Result) string {
	columns := []table.Column{
		{Title: "Run", Width: 20},
		{Title: "Trades", Width: 7},
		{Title: "Win Rate", Width: 9},
		{Title: "Return", Width: 9},
		{Title: "Max DD", Width: 8},
		{Title: "Sharpe", Width: 7},
		{Title: "Equity", Width: 12},
	}

	rows := make([]table.Row, len(results))
	for i, result := range results {
		m := result.Report.Metrics
		rows[i] = table.Row{
			result.Name,
			fmt.Sprintf("%d", m.TotalTrades),
			fmt.Sprintf("%.1f%%", m.WinRate*100),
			fmt.Sprintf("%.2f%%", m.TotalReturn*100),
			fmt.Sprintf("%.2f%%", m.MaxDrawdown*100),
			fmt.Sprintf("%.2f", m.SharpeRatio),
			fmt.Sprintf("%.2f", result.Report.FinalEquity),
		}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = lipgloss.NewStyle()

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
		table.WithFocused(false),
		table.WithStyles(styles),
	)

	return TitleStyle.Render("Sweep results") + "\n" + t.View()
}
