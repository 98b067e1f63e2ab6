package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session with the dispatcher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return runPlainChat(app, cmd)
			}
			_, err := tea.NewProgram(newChatModel(app)).Run()
			return err
		},
	}
}

// runPlainChat reads lines from stdin without the TUI, for piped input
// and non-terminal environments.
func runPlainChat(app *App, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		reply, handled, err := app.Router.Dispatch(context.Background(), line)
		if err != nil {
			return err
		}
		if !handled {
			continue
		}
		fmt.Fprintln(out, reply)
	}
	return scanner.Err()
}
