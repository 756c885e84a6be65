package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edakit/edakit/internal/config"
	"github.com/edakit/edakit/internal/models"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Browse session logs",
}

var logsListCmd = &cobra.Command{
	Use:     "list <tool>",
	Aliases: []string{"ls"},
	Short:   "List the session logs of a tool (newest first)",
	Args:    cobra.ExactArgs(1),
	RunE:    runLogsList,
}

var logsShowCmd = &cobra.Command{
	Use:   "show <tool> <log-id>",
	Short: "Print a session log",
	Args:  cobra.ExactArgs(2),
	RunE:  runLogsShow,
}

func init() {
	logsCmd.AddCommand(logsListCmd)
	logsCmd.AddCommand(logsShowCmd)
}

func statusBadge(status string) string {
	switch status {
	case models.SessionStatusCompleted:
		return badgeCompleted.Render(status)
	case models.SessionStatusAborted:
		return badgeAborted.Render(status)
	}
	return badgeFailed.Render(status)
}

func runLogsList(cmd *cobra.Command, args []string) error {
	logs, err := config.ListLogs(args[0])
	if err != nil {
		return fmt.Errorf("failed to list logs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(logs) == 0 {
		fmt.Fprintln(out, styleHint.Render("No session logs for "+args[0]+"."))
		return nil
	}

	for _, l := range logs {
		flags := ""
		if l.HasErrors {
			flags += " " + styleError.Render("errors")
		}
		if l.HasWarnings {
			flags += " " + styleWarning.Render("warnings")
		}
		fmt.Fprintf(out, "%s  %s  %s%s\n", styleValue.Render(l.LogID), styleLabel.Render(l.StartedAt), statusBadge(l.Status), flags)
	}
	return nil
}

func runLogsShow(cmd *cobra.Command, args []string) error {
	entry, body, err := config.ReadLog(args[0], args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render("Command:"), entry.Command)
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render("Started:"), entry.StartedAt)
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render("Ended:"), entry.EndedAt)
	fmt.Fprintf(out, "%s %s (exit code %d)\n", styleLabel.Render("Status:"), statusBadge(entry.Status), entry.ExitCode)
	fmt.Fprintln(out)
	fmt.Fprint(out, body)
	return nil
}
