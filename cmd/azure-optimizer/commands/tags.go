package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/elC0mpa/azure-optimizer/utils"
)

var tagsCmd = &cobra.Command{
	Use:   "costs-by-tag <tag-name>",
	Short: "Break down spend over the analysis window by tag value",
	Args:  cobra.ExactArgs(1),
	RunE:  runCostsByTag,
}

func runCostsByTag(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tagName := args[0]
	utils.DrawBanner()

	cfg, services, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	utils.StartSpinner("querying tag costs...")
	costs, err := services.cost.QueryCostByTag(ctx, tagName, cfg.StartDate, cfg.EndDate)
	utils.StopSpinner()
	if err != nil {
		return err
	}

	sort.Slice(costs, func(i, j int) bool { return costs[i].Amount > costs[j].Amount })

	fmt.Printf("\n %s\n", text.FgHiCyan.Sprintf("🏷  Costs by tag %q", tagName))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Tag Value", "Cost"})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})

	var total float64
	for _, tc := range costs {
		value := tc.TagValue
		if value == "" {
			value = text.FgHiBlack.Sprint("(untagged)")
		}
		tw.AppendRow(table.Row{value, fmt.Sprintf("%.2f %s", tc.Amount, tc.Currency)})
		total += tc.Amount
	}
	tw.AppendSeparator()
	tw.AppendRow(table.Row{text.FgHiWhite.Sprint("TOTAL"), text.FgHiGreen.Sprintf("%.2f", total)})

	tw.Render()
	return nil
}
