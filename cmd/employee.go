package cmd

import (
	"fmt"
	"os"

	"github.com/frahmantamala/expense-dashboard/internal/portal"
	"github.com/frahmantamala/expense-dashboard/pkg/logger"
	"github.com/spf13/cobra"
)

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Start the employee dashboard",
	Long:  `Interactive dashboard for submitting, editing and tracking your own expenses.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

		if err := portal.RunEmployee(cfg, logger.LoggerWrapper(), os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Employee dashboard failed: %v\n", err)
			os.Exit(1)
		}
	},
}
