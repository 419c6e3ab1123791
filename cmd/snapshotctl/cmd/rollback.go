package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/detached-state-go/example/button"
)

// buttonView is how a restored button is printed.
type buttonView struct {
	Owner   string   `yaml:"owner"`
	Label   string   `yaml:"label"`
	Pressed bool     `yaml:"pressed"`
	Clicks  int      `yaml:"clicks"`
	Tags    []string `yaml:"tags,omitempty"`
}

func newRollbackCommand(setup func(*cobra.Command) (*app, error)) *cobra.Command {
	var checkpoint string

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Restore a button from its latest or a chosen checkpoint and print it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			b := button.New("")

			if checkpoint == "" {
				err = a.caretaker.RollbackToLatest(cmd.Context(), a.owner, b)
			} else {
				checkpointID, parseErr := uuid.Parse(checkpoint)
				if parseErr != nil {
					return parseErr
				}

				err = a.caretaker.RollbackTo(cmd.Context(), checkpointID, b)
			}

			if err != nil {
				return err
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())

			err = encoder.Encode(buttonView{
				Owner:   a.owner,
				Label:   b.Label(),
				Pressed: b.Pressed(),
				Clicks:  b.Clicks(),
				Tags:    b.Tags(),
			})
			if err != nil {
				return err
			}

			return encoder.Close()
		},
	}

	cmd.Flags().StringVar(&checkpoint, "checkpoint", "", "checkpoint id, defaults to the latest checkpoint")

	return cmd
}
