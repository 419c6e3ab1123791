package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/detached-state-go/example/button"
	"github.com/AntonStoeckl/detached-state-go/optional"
)

func newCheckpointCommand(setup func(*cobra.Command) (*app, error)) *cobra.Command {
	var (
		label   string
		pressed bool
		clicks  int
		tags    []string
	)

	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Store a checkpoint of a button with the given state.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			b := button.New("")
			err = b.Restore(button.ButtonState{
				Label:   optional.Some(label),
				Pressed: optional.Some(pressed),
				Clicks:  optional.Some(clicks),
				Tags:    tags,
			})
			if err != nil {
				return err
			}

			checkpointID, err := a.caretaker.Checkpoint(cmd.Context(), a.owner, b)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), checkpointID.String())

			return err
		},
	}

	cmd.Flags().StringVar(&label, "label", "OK", "button label")
	cmd.Flags().BoolVar(&pressed, "pressed", false, "whether the button is pressed")
	cmd.Flags().IntVar(&clicks, "clicks", 0, "click count")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "button tag, repeatable")

	return cmd
}
