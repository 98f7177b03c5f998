package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/daemon"
	"tableflip.dev/habit/pkg/notify"
	"tableflip.dev/habit/pkg/store"
	"tableflip.dev/habit/pkg/ui"
)

func addUI(topLevel *cobra.Command) {
	silent := false
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the full-screen tracker interface",
		Example: `
habit ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			// A malformed document is fatal here, before the screen is
			// taken over.
			if err := probe(p); err != nil {
				return err
			}

			svc := &app.Service{Persistence: p}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			d := daemon.New(p, notify.Desktop{AppName: "HABIT", Silent: silent})
			d.CheckIn()
			go d.Run(ctx)

			watch, err := p.Watch(ctx)
			if err != nil {
				return fmt.Errorf("starting store watch: %w", err)
			}

			return ui.Run(svc, watch)
		},
	}

	cmd.Flags().BoolVar(&silent, "silent", false, "Skip the notification sound.")

	topLevel.AddCommand(cmd)
}

// probe loads every document once so parse errors surface at startup.
func probe(p store.Persistence) error {
	if _, err := p.LoadHabits(); err != nil {
		return err
	}
	if _, err := p.LoadSchedule(); err != nil {
		return err
	}
	if _, err := p.LoadEvents(); err != nil {
		return err
	}
	if _, err := p.LoadJournal(); err != nil {
		return err
	}
	return nil
}
