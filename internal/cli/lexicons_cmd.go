package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLexiconsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lexicons",
		Short: "List the registered lexicons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, header("已注册词库"))
			for _, d := range app.Registry.All() {
				fmt.Fprintf(out, "%s  %s\n",
					styleGreen.Render(d.Name),
					dim(d.Table))
				fmt.Fprintf(out, "  %s %s\n",
					dim("关键词:"),
					styleFg.Render(strings.Join(d.Keywords, "、")))
				fmt.Fprintf(out, "  %s %s\n",
					dim("占位符:"),
					styleBlue.Render(d.Placeholder))
			}
			return nil
		},
	}
}
