// @title TechFlow API
// @version 1.0
// @description Issue reporting and tracking for the TechFlow support desk.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/techflow/techflow/internal/interfaces/cli/export"
	"github.com/techflow/techflow/internal/interfaces/cli/migrate"
	"github.com/techflow/techflow/internal/interfaces/cli/reset"
	"github.com/techflow/techflow/internal/interfaces/cli/server"
	"github.com/techflow/techflow/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "techflow",
		Short:   "TechFlow - issue reporting and tracking",
		Long:    `TechFlow collects client issue reports, tracks them through triage and resolution, and exports them as workbooks.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		export.NewCommand(),
		reset.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
