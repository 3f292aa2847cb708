package main

import (
	"fmt"

	"github.com/confinamento/feedlot-engine/internal/config"
	"github.com/confinamento/feedlot-engine/internal/output"
	"github.com/spf13/cobra"
)

func newExampleCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "example <study.yaml>",
		Short: "Write an example study file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := output.SaveConfiguration(config.NewInputParser().CreateExampleStudy(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "example study written to %s\n", args[0])
			return nil
		},
	}
}
