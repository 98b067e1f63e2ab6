package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [count]",
		Short: "Sample new CJK combinations and ask the chat model which are words",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Generator == nil {
				return fmt.Errorf("word generation is disabled; enable word_generator in the config file")
			}

			count := 5
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("count must be a number, got %q", args[0])
				}
				count = n
			}
			if limit := app.Generator.MaxPerRequest(); count < 1 || count > limit {
				return fmt.Errorf("count must be between 1 and %d", limit)
			}

			reply, err := app.Generator.GenerateReply(context.Background(), count)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
