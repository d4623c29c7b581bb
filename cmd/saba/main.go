// Command saba is a minimal browser: it renders pages to PNG, dumps the
// rendering pipeline, or opens a window.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"saba/internal/cli"
	"saba/internal/shell"
	"saba/pkg/observability"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(newOpenCommand)
	err := root.ExecuteContext(ctx)
	observability.Sync()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "saba:", err)
		os.Exit(1)
	}
}

func newOpenCommand(a *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "open [url-or-file]",
		Short: "Open a browser window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := a.Config.Browser.HomeURL
			if len(args) == 1 {
				dest = args[0]
			}
			s := shell.New(app.New(), a.Config)
			if dest != "" {
				s.Navigate(dest)
			}
			s.Run()
			return nil
		},
	}
}
