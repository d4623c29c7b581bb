// Package cli holds the saba commands that run without a window.
package cli

import (
	"saba/pkg/config"
	"saba/pkg/observability"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X saba/internal/cli.Version=...".
var Version = "0.1.0"

// App is the state shared by every command: the config file flag and the
// configuration loaded from it.
type App struct {
	cfgFile string
	Config  *config.Config
}

// NewRootCommand builds the saba command tree. extra adds commands that need
// the loaded App, such as the window shell.
func NewRootCommand(extra ...func(*App) *cobra.Command) *cobra.Command {
	a := &App{}
	root := &cobra.Command{
		Use:           "saba",
		Short:         "saba renders HTML and CSS pages.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(a.cfgFile)
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			a.Config = cfg

			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("configuration loaded",
				zap.String("command", cmd.Name()),
				zap.Int("viewport_width", cfg.Browser.ViewportWidth),
				zap.Int("viewport_height", cfg.Browser.ViewportHeight))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(newRenderCommand(a), newDumpCommand(a))
	for _, fn := range extra {
		root.AddCommand(fn(a))
	}
	return root
}
