package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	orchestratorx "github.com/tanpawarit/Chative-Voice-Ordering/agent/agents/orchestrator"
	orderx "github.com/tanpawarit/Chative-Voice-Ordering/agent/order"
)

var (
	botColor   = color.New(color.FgCyan, color.Bold)
	orderColor = color.New(color.FgGreen)
	promptMark = color.New(color.FgYellow).Sprint("you> ")
)

func chatCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant over text, one utterance per line",
		Long: `Starts a local text session with the ordering assistant.

Each line is handled as one transcribed utterance. The reply and the current
order are printed after every turn. Type "exit" or "quit" to leave.

Examples:
  orderbot chat
  orderbot chat --session table-7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, *appCfg)
			if err != nil {
				return err
			}
			defer a.Close()

			orch, err := a.orchestrator(ctx)
			if err != nil {
				return err
			}

			if strings.TrimSpace(sessionID) == "" {
				sessionID = uuid.NewString()
			}
			return runChat(cmd, orch, sessionID)
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id to resume (random when empty)")
	return cmd
}

func runChat(cmd *cobra.Command, orch *orchestratorx.Orchestrator, sessionID string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "session %s\n", sessionID)
	botColor.Fprintln(out, orch.Greeting())

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, promptMark)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		result, err := orch.HandleUtterance(cmd.Context(), sessionID, line)
		if err != nil {
			if errors.Is(err, orchestratorx.ErrInvalidUtterance) {
				continue
			}
			return err
		}
		botColor.Fprintln(out, result.Reply)
		printOrder(out, result.Order)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func printOrder(w io.Writer, summary orderx.Summary) {
	if summary.IsEmpty() {
		orderColor.Fprintln(w, "  order: (empty)")
		return
	}
	orderColor.Fprintf(w, "  order: %s | total $%s\n", strings.Join(summary.Items, ", "), summary.Total)
}
