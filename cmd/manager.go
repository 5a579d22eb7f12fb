package cmd

import (
	"fmt"
	"os"

	"github.com/frahmantamala/expense-dashboard/internal/portal"
	"github.com/frahmantamala/expense-dashboard/pkg/logger"
	"github.com/spf13/cobra"
)

var managerCmd = &cobra.Command{
	Use:   "manager",
	Short: "Start the manager dashboard",
	Long:  `Interactive dashboard for reviewing pending expenses and downloading CSV reports.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

		if err := portal.RunManager(cfg, logger.LoggerWrapper(), os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Manager dashboard failed: %v\n", err)
			os.Exit(1)
		}
	},
}
