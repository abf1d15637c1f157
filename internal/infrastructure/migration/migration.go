package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/techflow/techflow/internal/infrastructure/persistence/migrations"
	"github.com/techflow/techflow/internal/shared/logger"
)

// Manager runs one migration strategy against a database.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager returns a manager applying the embedded goose scripts for dialect.
func NewManager(dialect string) *Manager {
	return NewManagerWithStrategy(NewGooseStrategy(migrations.FS, migrations.Dir(dialect), dialect))
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
