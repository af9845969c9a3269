package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect or reset a session's order",
		Long: `Reads the order ledger directly from the configured store.

Examples:
  orderbot order show --session table-7
  orderbot order show --session table-7 --json
  orderbot order clear --session table-7`,
	}

	cmd.AddCommand(
		orderShowCmd(),
		orderClearCmd(),
	)
	return cmd
}

func orderShowCmd() *cobra.Command {
	var (
		sessionID string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the grouped order and total",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(sessionID) == "" {
				return errors.New("--session is required")
			}
			a, err := newApp(cmd.Context(), *appCfg)
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := a.tools.CurrentOrder(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			printOrder(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func orderClearCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(sessionID) == "" {
				return errors.New("--session is required")
			}
			a, err := newApp(cmd.Context(), *appCfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.tools.ClearOrder(cmd.Context(), sessionID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order %s cleared\n", sessionID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id")
	return cmd
}
