// Package bootstrap loads configuration and initializes process-wide state shared by
// every command.
package bootstrap

import (
	"fmt"

	"github.com/techflow/techflow/internal/infrastructure/config"
	"github.com/techflow/techflow/internal/shared/biztime"
	"github.com/techflow/techflow/internal/shared/logger"
)

// Init loads the configuration, then initializes the logger and the business timezone.
func Init(configPath, env string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(configPath, env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}
