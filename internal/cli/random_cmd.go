package cli

import (
	"context"
	"fmt"

	"github.com/dax233/brainhole/internal/dispatch"
	"github.com/spf13/cobra"
)

func newRandomCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "random <lexicon>",
		Short: "Draw one random entry from the named lexicon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range app.Registry.All() {
				if d.Name != args[0] {
					continue
				}
				var resolver dispatch.Resolver
				reply, err := resolver.Resolve(context.Background(), d)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), reply)
				return nil
			}
			return fmt.Errorf("unknown lexicon %q; run 'brainhole lexicons' to list them", args[0])
		},
	}
}
