package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	menux "github.com/tanpawarit/Chative-Voice-Ordering/agent/menu"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List menu items and daily specials",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := menux.Load(appCfg.MenuFile)
			if err != nil {
				return err
			}
			printMenu(cmd.OutOrStdout(), catalog)
			return nil
		},
	}
}

func printMenu(w io.Writer, catalog *menux.Catalog) {
	heading := color.New(color.FgCyan, color.Bold)

	heading.Fprintln(w, "Menu")
	for _, item := range catalog.Items() {
		printMenuItem(w, item)
	}
	heading.Fprintln(w, "Daily specials")
	for _, item := range catalog.Specials() {
		printMenuItem(w, item)
	}
}

func printMenuItem(w io.Writer, item menux.Item) {
	fmt.Fprintf(w, "  %-32s $%6s  %s\n", item.Name, item.Price, item.Description)
	if tags := item.DietaryTags(); len(tags) > 0 {
		fmt.Fprintf(w, "  %-32s          %s\n", "", color.HiBlackString(strings.Join(tags, " · ")))
	}
}
