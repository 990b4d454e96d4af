package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <catalog.json>",
		Short: "Import a work-order catalog from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportWorkOrder(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported %s: %d findings, %d materials\n",
				result.WorkOrder.WONo, result.FindingCount, result.MaterialCount)
			return nil
		},
	}
}
