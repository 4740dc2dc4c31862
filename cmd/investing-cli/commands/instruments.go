package commands

import (
	"os"

	"investing-crawler/lib/investing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(instrumentsCmd)
}

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "Lists the built-in instrument catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Curr ID", "Header", "URL"})
		for _, inst := range investing.Catalog {
			t.AppendRow(table.Row{inst.Name, inst.CurrID, inst.Header, inst.URL})
		}
		t.Render()
	},
}
