package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func cmdLambda() *cobra.Command {
	cmd := &cobra.Command{
		Use: "lambda",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// invoked as a subcommand, the root PersistentPreRun is skipped
			if logger == nil {
				cmd.Root().PersistentPreRun(cmd, args)
			}
			if err := setup(cmd); err != nil {
				return errors.Wrap(err, "failed to setup lambda")
			}
			return nil
		},
	}

	cmd.AddCommand(
		cmdLambdaHTTP(),
		cmdLambdaEvent(),
	)

	return cmd
}
