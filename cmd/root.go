package cmd

import (
	"os"

	"github.com/spf13/cobra"
	configx "github.com/tanpawarit/Chative-Voice-Ordering/pkg/config"
	logx "github.com/tanpawarit/Chative-Voice-Ordering/pkg/logger"
)

var (
	envFile string
	appCfg  *AppConfig
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "orderbot",
		Short:         "Voice ordering assistant core",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configx.SetEnvFile(envFile)

			logCfg, err := configx.New[logx.Config]("LOG")
			if err != nil {
				return err
			}
			// Keep stdout for the conversation.
			logCfg.Output = os.Stderr
			logx.Init(*logCfg)

			appCfg, err = configx.New[AppConfig]("")
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file (defaults to ./.env when present)")

	rootCmd.AddCommand(
		chatCmd(),
		orderCmd(),
		menuCmd(),
	)
	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}
