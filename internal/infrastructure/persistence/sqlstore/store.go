// Package sqlstore keeps the issue collection in the issues table through gorm.
package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/infrastructure/persistence"
	"github.com/techflow/techflow/internal/infrastructure/persistence/mappers"
	"github.com/techflow/techflow/internal/infrastructure/persistence/models"
	"github.com/techflow/techflow/internal/shared/db"
	"github.com/techflow/techflow/internal/shared/logger"
)

const upsertBatchSize = 200

type Store struct {
	db     *gorm.DB
	txm    *db.TransactionManager
	mapper mappers.IssueMapper
	logger logger.Interface
}

func New(gdb *gorm.DB, log logger.Interface) *Store {
	return &Store{
		db:     gdb,
		txm:    db.NewTransactionManager(gdb),
		mapper: mappers.NewIssueMapper(),
		logger: log,
	}
}

// LoadAll returns every issue ordered by id. Rows the mapper rejects are reported
// through a *persistence.PartialReadError.
func (s *Store) LoadAll(ctx context.Context) ([]*issue.Issue, error) {
	var rows []models.IssueModel
	if err := db.GetTxFromContext(ctx, s.db).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load issues: %w", err)
	}

	issues := make([]*issue.Issue, 0, len(rows))
	var skipped []persistence.RowError
	for i := range rows {
		entity, err := s.mapper.ToDomain(&rows[i])
		if err != nil {
			s.logger.Warnw("unreadable issue row", "id", rows[i].ID, "error", err)
			skipped = append(skipped, persistence.RowError{Row: int(rows[i].ID), Err: err})
			continue
		}
		issues = append(issues, entity)
	}

	if len(skipped) > 0 {
		return issues, &persistence.PartialReadError{Issues: issues, Skipped: skipped}
	}
	return issues, nil
}

// SaveAll upserts every issue and deletes rows that are no longer in the collection,
// all inside one transaction.
func (s *Store) SaveAll(ctx context.Context, issues []*issue.Issue) error {
	rows := make([]*models.IssueModel, 0, len(issues))
	ids := make([]uint, 0, len(issues))
	for _, i := range issues {
		model, err := s.mapper.ToModel(i)
		if err != nil {
			return err
		}
		rows = append(rows, model)
		ids = append(ids, i.ID())
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := db.GetTxFromContext(ctx, s.db)

		if len(rows) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				CreateInBatches(rows, upsertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to upsert issues: %w", err)
			}
		}

		stale := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if len(ids) > 0 {
			stale = stale.Where("id NOT IN ?", ids)
		}
		if err := stale.Delete(&models.IssueModel{}).Error; err != nil {
			return fmt.Errorf("failed to prune issues: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Errorw("failed to save issues", "count", len(issues), "error", err)
		return err
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	err := db.GetTxFromContext(ctx, s.db).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.IssueModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear issues: %w", err)
	}
	return nil
}
