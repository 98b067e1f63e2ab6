package cli

import (
	"context"
	"fmt"

	"github.com/dax233/brainhole/internal/domain"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import lexicon data files from the configured data folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Importer.ImportAll(context.Background(), app.Registry.All())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, header("导入结果"))
			for _, f := range result.Files {
				switch f.Status {
				case domain.ImportStatusSuccess:
					fmt.Fprintf(out, "%s %s/%s (%d 行)\n",
						styleGreen.Render("✓"), f.Lexicon, f.File, f.Rows)
				case domain.ImportStatusSkipped:
					fmt.Fprintf(out, "%s %s/%s %s\n",
						styleYellow.Render("-"), f.Lexicon, f.File, dim("未变更，跳过"))
				case domain.ImportStatusFailed:
					fmt.Fprintf(out, "%s %s/%s: %s\n",
						styleRed.Render("✗"), f.Lexicon, f.File, f.Reason)
				}
			}

			imported, skipped, failed := result.Counts()
			fmt.Fprintf(out, "\n%s\n", dim(fmt.Sprintf(
				"batch %s: %d 导入, %d 跳过, %d 失败",
				result.BatchID, imported, skipped, failed)))
			if failed > 0 {
				return fmt.Errorf("%d file(s) failed to import", failed)
			}
			return nil
		},
	}
}
