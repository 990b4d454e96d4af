package cli

import (
	"github.com/spf13/cobra"

	"github.com/rgaitan/wotrack/internal/config"
	"github.com/rgaitan/wotrack/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Manhours   service.ManhourService
	WorkOrders service.WorkOrderService
	Import     service.ImportService

	Cfg *config.Config

	// IsInteractive reports whether stdin is a terminal; prompts are only
	// shown when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "wotrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "wotrack",
		Short: "Work-order man-hour tracker",
	}

	root.AddCommand(
		newImportCmd(app),
		newWoCmd(app),
		newStartCmd(app),
		newStopCmd(app),
		newWatchCmd(app),
	)

	return root
}
