package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgaitan/wotrack/internal/cli/formatter"
	"github.com/rgaitan/wotrack/internal/domain"
)

func newWoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wo",
		Short: "Browse work orders",
	}

	cmd.AddCommand(
		newWoListCmd(app),
		newWoShowCmd(app),
	)

	return cmd
}

func newWoListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List work orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			workOrders, err := app.WorkOrders.List(context.Background())
			if err != nil {
				return err
			}

			if len(workOrders) == 0 {
				fmt.Println(formatter.Dim("No work orders. Run 'wotrack import' first."))
				return nil
			}

			rows := make([][]string, 0, len(workOrders))
			for _, wo := range workOrders {
				rows = append(rows, []string{
					formatter.Bold(wo.WONo),
					wo.Reg,
					wo.Customer,
					wo.Description,
				})
			}

			fmt.Println(formatter.RenderTable(
				[]string{"WO NO", "REG", "CUSTOMER", "DESCRIPTION"}, rows))
			return nil
		},
	}
}

func newWoShowCmd(app *App) *cobra.Command {
	var showLog bool

	cmd := &cobra.Command{
		Use:   "show <wo_no>",
		Short: "Show a work order with findings, materials, and active sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			view, err := app.WorkOrders.Get(ctx, args[0])
			if err != nil {
				return err
			}

			active, err := app.Manhours.ActiveByWorkOrder(ctx, view.Info.ID)
			if err != nil {
				return err
			}

			fmt.Println(renderWorkOrderHeader(view.Info))
			fmt.Println()
			fmt.Println(formatter.Header("Findings"))
			fmt.Println(renderFindingsTable(view.Findings, active))

			if len(view.Materials) > 0 {
				fmt.Println(formatter.Header("Materials"))
				fmt.Println(renderMaterialsTable(view.Findings, view.Materials))
			}

			if showLog {
				for _, f := range view.Findings {
					log, err := app.WorkOrders.PerformingLog(ctx, f.ID)
					if err != nil {
						return err
					}
					if len(log) == 0 {
						continue
					}
					fmt.Println(formatter.Header("Performing Log — " + f.FindingNo))
					fmt.Println(renderPerformingLog(log))
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showLog, "log", false, "Include the performing log per finding")

	return cmd
}

func renderWorkOrderHeader(wo *domain.WorkOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", formatter.Bold(wo.WONo), formatter.Dim(wo.Description))
	fmt.Fprintf(&b, "Reg: %s   Customer: %s", wo.Reg, wo.Customer)
	if wo.PN != "" {
		fmt.Fprintf(&b, "   P/N: %s", wo.PN)
	}
	if wo.SN != "" {
		fmt.Fprintf(&b, "   S/N: %s", wo.SN)
	}
	return formatter.RenderBox("Work Order", b.String())
}

func renderFindingsTable(findings []*domain.Finding, active map[string][]domain.ActiveSession) string {
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		working := formatter.Dim("--")
		if sessions := active[f.ID]; len(sessions) > 0 {
			names := make([]string, 0, len(sessions))
			for _, s := range sessions {
				names = append(names, s.EmployeeID)
			}
			working = formatter.StyleGreen.Render(strings.Join(names, ", "))
		}
		rows = append(rows, []string{
			formatter.Bold(f.FindingNo),
			f.Description,
			formatter.StatusPill(f.EffectiveStatus()),
			working,
		})
	}
	return formatter.RenderTable([]string{"NO", "DESCRIPTION", "STATUS", "WORKING"}, rows)
}

func renderMaterialsTable(findings []*domain.Finding, materials []*domain.Material) string {
	findingNo := make(map[string]string, len(findings))
	for _, f := range findings {
		findingNo[f.ID] = f.FindingNo
	}

	rows := make([][]string, 0, len(materials))
	for _, m := range materials {
		rows = append(rows, []string{
			findingNo[m.FindingID],
			m.PartNumber,
			m.Description,
			formatter.Qty(m.Qty, m.Unit),
			formatter.AvailabilityPill(m.Available),
		})
	}
	return formatter.RenderTable([]string{"FINDING", "P/N", "DESCRIPTION", "QTY", "AVAILABILITY"}, rows)
}

func renderPerformingLog(log []domain.ManhourEvent) string {
	rows := make([][]string, 0, len(log))
	for _, e := range log {
		duration := formatter.Dim("--")
		if e.DurationSecs != nil {
			duration = formatter.Duration(*e.DurationSecs)
		}
		status := formatter.Dim("--")
		if e.FinalStatus != nil {
			status = formatter.StatusPill(*e.FinalStatus)
		}
		rows = append(rows, []string{
			formatter.Timestamp(e.Timestamp),
			e.EmployeeID,
			e.TaskCode,
			formatter.ActionBadge(e.Action),
			duration,
			status,
		})
	}
	return formatter.RenderTable([]string{"TIME", "EMPLOYEE", "TASK", "ACTION", "DURATION", "STATUS"}, rows)
}
