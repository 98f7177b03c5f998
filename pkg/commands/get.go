package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/printers"
	"tableflip.dev/habit/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	reminders := false
	cmd := &cobra.Command{
		Use:   "get",
		Short: "print today's habits and streaks",
		Example: `
habit get
habit get --reminders
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			pp := printers.PrettyPrint{}
			fmt.Println("")

			if reminders {
				sched, err := p.LoadSchedule()
				if err != nil {
					return err
				}
				pp.Title("Reminders")
				pp.Reminders(sched)
				return nil
			}

			data, err := p.LoadHabits()
			if err != nil {
				return err
			}
			now := time.Now()
			pp.Title(now.Format("Monday  02 January 2006"))
			pp.Habits(data, now)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&reminders, "reminders", "r", false, "Print the reminder schedule instead.")

	topLevel.AddCommand(cmd)
}
