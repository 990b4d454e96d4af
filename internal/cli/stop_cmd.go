package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rgaitan/wotrack/internal/cli/formatter"
	"github.com/rgaitan/wotrack/internal/domain"
	"github.com/rgaitan/wotrack/internal/engine"
)

func newStopCmd(app *App) *cobra.Command {
	var woNo, findingNo, employeeID, statusStr, evidencePath string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop working a finding",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			finding, err := app.WorkOrders.ResolveFinding(ctx, woNo, findingNo)
			if err != nil {
				return err
			}

			if employeeID == "" {
				employeeID, err = pickStopEmployee(ctx, app, finding.ID, findingNo)
				if err != nil || employeeID == "" {
					return err
				}
			}

			result, err := app.Manhours.ResolveStop(ctx, finding.ID, employeeID)
			if err != nil {
				return err
			}

			switch result.Resolution.Outcome {
			case engine.StopNotActive:
				fmt.Printf("%s has no open session on %s.\n", employeeID, findingNo)
				return nil

			case engine.StopPassThrough:
				fmt.Printf("Stopped %s on %s after %s.\n",
					employeeID, findingNo, engine.FormatHMS(result.Record.DurationSecs))
				return nil
			}

			// Last worker: the finding needs a final status before the stop
			// can be recorded.
			if statusStr == "" {
				if !app.interactive() {
					return fmt.Errorf("%s is the last worker on %s; pass --status (and --evidence for CLOSED)", employeeID, findingNo)
				}
				if err := promptFinalStatus(&statusStr, &evidencePath).Run(); err != nil {
					return err
				}
			}

			status := domain.FindingStatus(statusStr)
			var evidence []byte
			if evidencePath != "" {
				evidence, err = os.ReadFile(evidencePath)
				if err != nil {
					return fmt.Errorf("reading evidence file: %w", err)
				}
			}

			record, err := app.Manhours.FinalizeStop(ctx, finding.ID, employeeID, status, evidence)
			if err != nil {
				return err
			}

			fmt.Printf("Stopped %s on %s after %s. Finding is now %s.\n",
				employeeID, findingNo, engine.FormatHMS(record.DurationSecs),
				formatter.StatusPill(record.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&woNo, "wo", "", "Work order number")
	cmd.Flags().StringVar(&findingNo, "finding", "", "Finding number")
	cmd.Flags().StringVar(&employeeID, "emp", "", "Employee ID (prompted when ambiguous)")
	cmd.Flags().StringVar(&statusStr, "status", "", "Final finding status when stopping as last worker (IN_PROGRESS, ON_HOLD, CLOSED)")
	cmd.Flags().StringVar(&evidencePath, "evidence", "", "Evidence file, required when closing")
	cmd.MarkFlagRequired("wo")
	cmd.MarkFlagRequired("finding")

	return cmd
}

// pickStopEmployee resolves which employee is stopping when --emp was not
// given: the single candidate when there is one, a select prompt otherwise.
func pickStopEmployee(ctx context.Context, app *App, findingID, findingNo string) (string, error) {
	prompt, err := app.Manhours.PromptStop(ctx, findingID)
	if err != nil {
		return "", err
	}

	switch prompt.Outcome {
	case engine.StopNoActiveSessions:
		fmt.Printf("No one is working %s.\n", findingNo)
		return "", nil

	case engine.StopSingleCandidate:
		return prompt.Candidates[0].EmployeeID, nil

	default:
		if !app.interactive() {
			return "", fmt.Errorf("multiple workers active on %s; pass --emp", findingNo)
		}
		var picked string
		if err := promptSelectCandidate(prompt.Candidates, &picked).Run(); err != nil {
			return "", err
		}
		return picked, nil
	}
}
