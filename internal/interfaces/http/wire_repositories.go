package http

import (
	"fmt"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/infrastructure/attachment"
	"github.com/techflow/techflow/internal/infrastructure/database"
	"github.com/techflow/techflow/internal/infrastructure/history"
	"github.com/techflow/techflow/internal/infrastructure/migration"
	"github.com/techflow/techflow/internal/infrastructure/persistence"
	"github.com/techflow/techflow/internal/infrastructure/persistence/sqlstore"
	"github.com/techflow/techflow/internal/infrastructure/persistence/xlsxstore"
	"github.com/techflow/techflow/internal/infrastructure/repository"
	sharedConfig "github.com/techflow/techflow/internal/shared/config"
)

// repositories holds the storage used by the issue use cases.
type repositories struct {
	issueRepo   issue.Repository
	historyLog  issue.HistoryLog
	attachments *attachment.Storage
}

// initStorage opens the configured issue store. The sql driver migrates the schema
// before first use.
func (c *Container) initStorage() error {
	store, err := c.openIssueStore()
	if err != nil {
		return err
	}

	c.repos = &repositories{
		issueRepo:   repository.NewIssueRepository(store, c.log.Named("issue.repository")),
		historyLog:  history.NewJSONLog(c.cfg.Storage.HistoryFile, c.log.Named("issue.history")),
		attachments: attachment.NewStorage(c.cfg.Storage.UploadDir, c.cfg.Storage.MaxUploadBytes(), c.log.Named("attachment")),
	}
	return nil
}

func (c *Container) openIssueStore() (persistence.IssueStore, error) {
	switch c.cfg.Storage.Driver {
	case sharedConfig.StorageDriverSQL:
		if err := database.Init(&c.cfg.Database); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.usesDB = true

		if err := migration.NewManager(c.cfg.Database.Dialect).Migrate(database.Get()); err != nil {
			return nil, err
		}

		c.log.Infow("issue store ready", "driver", c.cfg.Storage.Driver, "dialect", c.cfg.Database.Dialect)
		return sqlstore.New(database.Get(), c.log.Named("issue.sqlstore")), nil
	default:
		c.log.Infow("issue store ready", "driver", c.cfg.Storage.Driver, "path", c.cfg.Storage.IssuesFile)
		return xlsxstore.New(c.cfg.Storage.IssuesFile, c.log.Named("issue.xlsxstore")), nil
	}
}
