package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/acmercer/timekeep/internal/cli/formatter"
	"github.com/acmercer/timekeep/internal/input"
	"github.com/acmercer/timekeep/internal/tracker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start tracking a session (q ends it, b toggles break)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("start requires an interactive terminal")
			}
			ctx := context.Background()
			now := time.Now()
			if _, err := app.Tracker.Start(ctx, now); err != nil {
				return err
			}

			m := trackModel{
				app:      app,
				recorder: input.NewRecorder(now),
				poll:     app.Config.Tracking.PollInterval(),
			}
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("running tracking view: %w", err)
			}

			session, err := app.Tracker.End(ctx, time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Session %s recorded: %s active, %s break (%d periods)\n",
				formatter.TruncID(session.ID),
				formatter.FormatDuration(session.ActiveDuration),
				formatter.FormatDuration(session.DisplayBreakDuration()),
				len(session.Periods))
			return nil
		},
	}
}

type tickMsg time.Time

// trackModel is the live tracking view. Key events double as input
// evidence: every keypress touches the recorder the ledger polls.
type trackModel struct {
	app      *App
	recorder *input.Recorder
	poll     time.Duration
	err      error
}

func (m trackModel) tickCmd() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m trackModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.recorder.Touch(time.Now())
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "b":
			if err := m.app.Tracker.ToggleBreak(context.Background(), time.Now()); err != nil {
				m.err = err
			}
		}
	case tickMsg:
		if err := m.app.Tracker.Tick(context.Background(), time.Time(msg), m.recorder.LastInput()); err != nil {
			m.err = err
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m trackModel) View() string {
	status, err := m.app.Tracker.Status()
	if err != nil {
		return "ending...\n"
	}

	var state string
	switch status.State {
	case tracker.StateActive:
		state = formatter.StyleActive.Render("ACTIVE")
	case tracker.StateBreak:
		state = formatter.StyleBreak.Render("ON BREAK")
	case tracker.StateIdle:
		state = formatter.StyleIdle.Render("IDLE")
	default:
		state = string(status.State)
	}

	content := fmt.Sprintf("%s  since %s\n\nactive  %s\nbreak   %s\nidle    %s\n\n%s",
		state,
		status.Since.Local().Format("15:04:05"),
		formatter.FormatDuration(status.Active),
		formatter.FormatDuration(status.Break),
		formatter.FormatDuration(status.Idle),
		formatter.Dim("b: toggle break  q: end session"))
	if m.err != nil {
		content += "\n" + formatter.StyleIdle.Render(m.err.Error())
	}
	return formatter.RenderBox("timekeep", content)
}
