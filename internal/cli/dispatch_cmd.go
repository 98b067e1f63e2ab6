package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDispatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <message>",
		Short: "Route one message through the dispatcher and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			reply, handled, err := app.Router.Dispatch(context.Background(), message)
			if err != nil {
				return err
			}
			if !handled {
				fmt.Fprintln(cmd.OutOrStdout(), dim("(no rule matched; the message would be left to other consumers)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
