package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/techflow/techflow/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/techflow/techflow/internal/interfaces/http"
)

var (
	configPath string
	outputDir  string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all issues to a workbook",
		Long:  `Write every issue, its history and summary counts to issue_export_<timestamp>.xlsx.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory the workbook is written to")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
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

	result, err := container.IssueUseCases().ExportIssues.Execute(cmd.Context())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, result.Filename)
	if err := os.WriteFile(path, result.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	log.Infow("issues exported", "path", path, "issue_count", result.IssueCount)
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d issues to %s\n", result.IssueCount, path)
	return nil
}
