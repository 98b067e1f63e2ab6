package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dax233/brainhole/internal/dispatch"
	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Look up a term across every lexicon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, _, err := app.Router.Dispatch(context.Background(),
				dispatch.SearchPrefix+" "+strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
