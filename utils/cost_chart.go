package utils

import (
	"fmt"
	"sort"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ColorNormalDay  = "#66c2a5"
	ColorAnomalyDay = "#d73027"
)

var chartStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawDailyCostChart renders the daily spend over the analysis window,
// highlighting the days the anomaly check flagged.
func DrawDailyCostChart(records []model.CostRecord, anomalies []model.CostAnomaly) {
	if len(records) == 0 {
		return
	}

	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📈  DAILY COST TREND"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	totals := map[string]float64{}
	for _, rec := range records {
		totals[rec.Date.UTC().Format("2006-01-02")] += rec.Amount
	}

	flagged := make(map[string]bool, len(anomalies))
	for _, anomaly := range anomalies {
		flagged[anomaly.Date] = true
	}

	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Strings(days)

	bc := barchart.New(130, 20)
	for _, day := range days {
		color := ColorNormalDay
		if flagged[day] {
			color = ColorAnomalyDay
		}
		bc.Push(barchart.BarData{
			Label: dayLabel(day, totals[day]),
			Values: []barchart.BarValue{
				{
					Value: totals[day],
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
				},
			},
		})
	}

	fmt.Println()
	bc.Draw()
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, chartStyle.Render(bc.View())))
}

func dayLabel(day string, amount float64) string {
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		return fmt.Sprintf("%s: %.2f", day, amount)
	}
	return fmt.Sprintf("%s: %.2f", parsed.Format("Jan 02"), amount)
}
