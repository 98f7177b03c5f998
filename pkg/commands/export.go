package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/export"
	"tableflip.dev/habit/pkg/store"
)

func addExport(topLevel *cobra.Command) {
	output := ""
	cmd := &cobra.Command{
		Use:   "export",
		Short: "write the habit log as CSV",
		Example: `
habit export
habit export -o /tmp/habits.csv
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			data, err := p.LoadHabits()
			if err != nil {
				return err
			}
			path, err := export.ToFile(data, output, time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Exported  →  %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file. Defaults to ~/habits_export_<today>.csv.")

	topLevel.AddCommand(cmd)
}
