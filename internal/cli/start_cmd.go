package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgaitan/wotrack/internal/cli/formatter"
	"github.com/rgaitan/wotrack/internal/engine"
)

func newStartCmd(app *App) *cobra.Command {
	var woNo, findingNo, employeeID, taskCode string
	var yes bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start working a finding",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if employeeID == "" {
				employeeID = app.Cfg.DefaultEmployeeID
			}
			if taskCode == "" {
				taskCode = app.Cfg.DefaultTaskCode
			}
			if (employeeID == "" || taskCode == "") && app.interactive() {
				if err := promptEmployee(&employeeID, &taskCode).Run(); err != nil {
					return err
				}
			}
			if employeeID == "" || taskCode == "" {
				return fmt.Errorf("employee ID and task code are required")
			}

			finding, err := app.WorkOrders.ResolveFinding(ctx, woNo, findingNo)
			if err != nil {
				return err
			}

			result, err := app.Manhours.RequestStart(ctx, finding.ID, employeeID, taskCode)
			if err != nil {
				return err
			}

			switch result.Decision.Outcome {
			case engine.StartAlreadyActive:
				fmt.Printf("%s is already working %s.\n", employeeID, findingNo)
				return nil

			case engine.StartConflict:
				if !result.Started {
					confirmed := yes
					if !confirmed {
						if !app.interactive() {
							return fmt.Errorf("finding %s has active workers; pass --yes to start anyway", findingNo)
						}
						if err := promptConfirmConflict(result.Decision.ActiveOthers, &confirmed).Run(); err != nil {
							return err
						}
					}
					if !confirmed {
						fmt.Println(formatter.Dim("Start cancelled."))
						return nil
					}
					result, err = app.Manhours.ConfirmStart(ctx, finding.ID, employeeID, taskCode)
					if err != nil {
						return err
					}
				}
			}

			fmt.Printf("Started %s on %s (%s).\n", employeeID, findingNo, taskCode)
			if result.ElsewhereFinding != "" {
				fmt.Println(formatter.StyleYellow.Render(
					fmt.Sprintf("Note: %s also has an open session on another finding.", employeeID)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&woNo, "wo", "", "Work order number")
	cmd.Flags().StringVar(&findingNo, "finding", "", "Finding number")
	cmd.Flags().StringVar(&employeeID, "emp", "", "Employee ID")
	cmd.Flags().StringVar(&taskCode, "task", "", "Task code")
	cmd.Flags().BoolVar(&yes, "yes", false, "Start without confirmation when others are active")
	cmd.MarkFlagRequired("wo")
	cmd.MarkFlagRequired("finding")

	return cmd
}
