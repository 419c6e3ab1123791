package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(setup func(*cobra.Command) (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the checkpoints of a button, oldest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			storables, err := a.caretaker.History(cmd.Context(), a.owner)
			if err != nil {
				return err
			}

			for _, storable := range storables {
				_, err = fmt.Fprintf(
					cmd.OutOrStdout(),
					"%s\t%s\t%s\n",
					storable.CheckpointID,
					storable.CapturedAt.UTC().Format(time.RFC3339),
					storable.SnapshotType,
				)
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}
