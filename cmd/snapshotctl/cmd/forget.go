package cmd

import (
	"github.com/spf13/cobra"
)

func newForgetCommand(setup func(*cobra.Command) (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Delete all checkpoints of a button.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			return a.caretaker.Forget(cmd.Context(), a.owner)
		},
	}
}
