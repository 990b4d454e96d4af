package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgaitan/wotrack/internal/cli/formatter"
	"github.com/rgaitan/wotrack/internal/domain"
	"github.com/rgaitan/wotrack/internal/service"
)

func newWatchCmd(app *App) *cobra.Command {
	var woNo string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live view of active sessions on a work order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("watch requires an interactive terminal")
			}

			view, err := app.WorkOrders.Get(context.Background(), woNo)
			if err != nil {
				return err
			}

			model := newWatchModel(app.Manhours, view)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&woNo, "wo", "", "Work order number")
	cmd.MarkFlagRequired("wo")

	return cmd
}

type watchKeyMap struct {
	Quit key.Binding
}

var watchKeys = watchKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type watchTickMsg time.Time

type watchSessionsMsg struct {
	active map[string][]domain.ActiveSession
	err    error
}

type watchModel struct {
	manhours service.ManhourService
	view     *service.WorkOrderView

	active map[string][]domain.ActiveSession
	now    time.Time
	err    error
}

func newWatchModel(manhours service.ManhourService, view *service.WorkOrderView) watchModel {
	return watchModel{
		manhours: manhours,
		view:     view,
		now:      time.Now(),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.loadSessions(), watchTick())
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) loadSessions() tea.Cmd {
	return func() tea.Msg {
		active, err := m.manhours.ActiveByWorkOrder(context.Background(), m.view.Info.ID)
		return watchSessionsMsg{active: active, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchTickMsg:
		m.now = time.Time(msg)
		return m, tea.Batch(m.loadSessions(), watchTick())

	case watchSessionsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.active = msg.active
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, watchKeys.Quit) {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m watchModel) View() string {
	header := fmt.Sprintf("%s  %s\n\n",
		formatter.Bold(m.view.Info.WONo),
		formatter.Dim(m.view.Info.Description))

	if m.err != nil {
		return header + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
	}

	findingNo := make(map[string]string, len(m.view.Findings))
	for _, f := range m.view.Findings {
		findingNo[f.ID] = f.FindingNo
	}

	var rows [][]string
	for _, f := range m.view.Findings {
		for _, s := range m.active[f.ID] {
			rows = append(rows, []string{
				findingNo[s.FindingID],
				s.EmployeeID,
				s.TaskCode,
				formatter.Timestamp(s.StartedAt),
				formatter.Elapsed(s.StartedAt, m.now),
			})
		}
	}

	if len(rows) == 0 {
		return header + formatter.Dim("No active sessions.") + "\n\n" +
			formatter.Dim("q to quit") + "\n"
	}

	table := formatter.RenderTable(
		[]string{"FINDING", "EMPLOYEE", "TASK", "STARTED", "ELAPSED"}, rows)

	return header + table + "\n" + formatter.Dim("q to quit") + "\n"
}
