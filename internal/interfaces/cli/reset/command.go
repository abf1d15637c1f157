package reset

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techflow/techflow/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/techflow/techflow/internal/interfaces/http"
)

var (
	configPath string
	confirm    bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all issues, history and attachments",
		Long:  `Remove every stored issue, the history log and all uploaded attachments. Requires --yes.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVarP(&confirm, "yes", "y", false, "Confirm the reset")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if !confirm {
		return fmt.Errorf("refusing to reset without --yes")
	}

	cfg, log, err := bootstrap.Init(configPath, "")
	if err != nil {
		return err
	}

	container, err := httpRouter.NewContainer(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		_ = container.Shutdown(context.Background())
	}()

	if err := container.IssueUseCases().ResetIssues.Execute(cmd.Context()); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	log.Warnw("all issue data reset from the command line")
	fmt.Fprintln(cmd.OutOrStdout(), "All issue data has been reset")
	return nil
}
