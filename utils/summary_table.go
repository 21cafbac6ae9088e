package utils

import (
	"fmt"
	"os"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func DrawReportSummary(report *model.Report) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 🔎  AZURE OPTIMIZATION REPORT"))
	fmt.Printf(" Subscription: %s\n", text.FgBlue.Sprint(report.Metadata.SubscriptionID))
	fmt.Printf(" Period: %s → %s\n",
		text.FgCyan.Sprint(report.Metadata.TimePeriod.StartDate),
		text.FgCyan.Sprint(report.Metadata.TimePeriod.EndDate))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Check", "Findings", "Estimated Savings"})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	tw.AppendRow(summaryRow("Idle VMs", len(report.IdleVMs), idleSavings(report.IdleVMs)))
	tw.AppendRow(summaryRow("SKU Resizes", len(report.SKUResizes), resizeSavings(report.SKUResizes)))
	tw.AppendRow(summaryRow("Orphaned Disks", len(report.OrphanedDisks), diskSavings(report.OrphanedDisks)))
	tw.AppendRow(summaryRow("Cost Anomalies", len(report.CostAnomalies), 0))

	tw.AppendSeparator()
	tw.AppendRow(table.Row{
		text.FgHiWhite.Sprint("TOTAL"),
		text.FgHiWhite.Sprintf("%d", report.Summary.TotalRecommendations),
		text.FgHiGreen.Sprintf("%.2f", report.Summary.TotalEstimatedSavings),
	})

	tw.Render()
}

func DrawOrphanedDisksTable(disks []model.OrphanedDisk) {
	if len(disks) == 0 {
		return
	}

	fmt.Printf("\n %s\n", text.FgHiCyan.Sprint("💾 Orphaned Disks"))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Disk", "Resource Group", "Age (days)", "Size (GB)", "SKU", "Savings"})
	tw.SetStyle(table.StyleRounded)

	for _, disk := range disks {
		savings := "-"
		if disk.EstimatedSavings != nil {
			savings = text.FgHiGreen.Sprintf("%.2f", *disk.EstimatedSavings)
		}
		tw.AppendRow(table.Row{
			disk.DiskName,
			disk.ResourceGroup,
			disk.AgeDays,
			disk.SizeGB,
			disk.SKUName,
			savings,
		})
	}

	tw.Render()
}

func summaryRow(name string, count int, savings float64) table.Row {
	nameCell := text.FgGreen.Sprint(name)
	countCell := fmt.Sprintf("%d", count)
	if count > 0 {
		nameCell = text.FgRed.Sprint(name)
		countCell = text.FgHiRed.Sprint(countCell)
	}
	return table.Row{nameCell, countCell, fmt.Sprintf("%.2f", savings)}
}

func idleSavings(vms []model.IdleVM) float64 {
	var total float64
	for _, vm := range vms {
		if vm.EstimatedSavings != nil {
			total += *vm.EstimatedSavings
		}
	}
	return total
}

func resizeSavings(resizes []model.SKUResize) float64 {
	var total float64
	for _, r := range resizes {
		if r.EstimatedSavings != nil {
			total += *r.EstimatedSavings
		}
	}
	return total
}

func diskSavings(disks []model.OrphanedDisk) float64 {
	var total float64
	for _, d := range disks {
		if d.EstimatedSavings != nil {
			total += *d.EstimatedSavings
		}
	}
	return total
}
