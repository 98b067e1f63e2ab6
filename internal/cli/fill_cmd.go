package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFillCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fill <template>",
		Short: "Replace lexicon placeholders in a template with random entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filled, err := app.Router.Substitutor().Fill(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), filled)
			return nil
		},
	}
}
