package usecases

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/techflow/techflow/internal/application/issue/dto"
	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/shared/biztime"
	"github.com/techflow/techflow/internal/shared/errors"
	"github.com/techflow/techflow/internal/shared/id"
	"github.com/techflow/techflow/internal/shared/logger"
	"github.com/techflow/techflow/internal/shared/utils"
)

// MaxReportCodeAttempts bounds the collision retries when drawing a report code.
const MaxReportCodeAttempts = 10

// AttachmentUpload is one uploaded file. Open is called at most once.
type AttachmentUpload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type CreateIssueCommand struct {
	ClientName  string
	Phone       string
	Email       string
	Project     string
	Priority    string
	Description string
	Attachments []AttachmentUpload
}

type CreateIssueResult struct {
	IssueID  uint
	ReportID string
	Issue    *dto.IssueDTO
}

type CreateIssueConfig struct {
	Projects         vo.ProjectCatalog
	ReportCodePrefix string
	MaxAttachments   int
}

type CreateIssueUseCase struct {
	repo          issue.Repository
	history       issue.HistoryLog
	attachments   AttachmentStore
	dispatcher    NotificationDispatcher
	cfg           CreateIssueConfig
	newReportCode func(prefix string) (string, error)
	now           func() time.Time
	logger        logger.Interface
}

func NewCreateIssueUseCase(
	repo issue.Repository,
	history issue.HistoryLog,
	attachments AttachmentStore,
	dispatcher NotificationDispatcher,
	cfg CreateIssueConfig,
	logger logger.Interface,
) *CreateIssueUseCase {
	return &CreateIssueUseCase{
		repo:          repo,
		history:       history,
		attachments:   attachments,
		dispatcher:    dispatcher,
		cfg:           cfg,
		newReportCode: id.NewReportCode,
		now:           biztime.Now,
		logger:        logger,
	}
}

func (uc *CreateIssueUseCase) Execute(ctx context.Context, cmd CreateIssueCommand) (*CreateIssueResult, error) {
	uc.logger.Infow("executing create issue use case",
		"project", cmd.Project,
		"priority", cmd.Priority,
		"attachments", len(cmd.Attachments))

	project, priority, err := uc.validateCommand(cmd)
	if err != nil {
		uc.logger.Warnw("invalid create issue command", "error", err)
		return nil, err
	}

	stored, err := uc.storeAttachments(ctx, cmd.Attachments)
	if err != nil {
		return nil, err
	}

	created, err := uc.create(ctx, cmd, project, priority, stored)
	if err != nil {
		if len(stored) > 0 {
			if rmErr := uc.attachments.Remove(stored...); rmErr != nil {
				uc.logger.Warnw("failed to remove attachments of rejected issue", "error", rmErr)
			}
		}
		return nil, err
	}

	uc.logger.Infow("issue created successfully",
		"issue_id", created.ID(),
		"report_code", created.ReportCode(),
		"assigned_to", created.AssignedTo())

	appendHistory(ctx, uc.history, uc.logger, created.ID(), issue.HistoryEntry{
		Timestamp:   created.CreatedAt(),
		Action:      issue.ActionCreated,
		Description: fmt.Sprintf("Issue reported by %s", created.ClientName()),
		PerformedBy: created.ClientName(),
	})

	uc.dispatcher.Dispatch(IssueNotification{Event: EventIssueCreated, Issue: created})

	return &CreateIssueResult{
		IssueID:  created.ID(),
		ReportID: created.ReportCode(),
		Issue:    dto.ToIssueDTO(created),
	}, nil
}

func (uc *CreateIssueUseCase) create(
	ctx context.Context,
	cmd CreateIssueCommand,
	project vo.Project,
	priority vo.Priority,
	attachments []string,
) (*issue.Issue, error) {
	entity, err := issue.NewIssue(
		cmd.ClientName,
		cmd.Phone,
		cmd.Email,
		project,
		priority,
		cmd.Description,
		attachments,
		uc.now(),
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	created, err := uc.repo.Create(ctx, func(nextID uint, taken func(string) bool) (*issue.Issue, error) {
		code, err := uc.allocateReportCode(taken)
		if err != nil {
			return nil, err
		}
		if err := entity.AssignIdentity(nextID, code); err != nil {
			return nil, err
		}
		return entity, nil
	})
	if err != nil {
		uc.logger.Errorw("failed to save issue", "error", err)
		return nil, toAppError(err)
	}
	return created, nil
}

func (uc *CreateIssueUseCase) allocateReportCode(taken func(string) bool) (string, error) {
	for attempt := 0; attempt < MaxReportCodeAttempts; attempt++ {
		code, err := uc.newReportCode(uc.cfg.ReportCodePrefix)
		if err != nil {
			return "", err
		}
		if !taken(code) {
			return code, nil
		}
	}
	return "", issue.ErrReportCodeExhausted
}

func (uc *CreateIssueUseCase) validateCommand(cmd CreateIssueCommand) (vo.Project, vo.Priority, error) {
	required := []struct {
		field string
		value string
	}{
		{"name", cmd.ClientName},
		{"phone", cmd.Phone},
		{"email", cmd.Email},
		{"project", cmd.Project},
		{"priority", cmd.Priority},
		{"description", cmd.Description},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) > 0 {
		return "", "", errors.NewValidationError(
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	if !utils.IsValidEmail(strings.TrimSpace(cmd.Email)) {
		return "", "", errors.NewValidationError("invalid email address")
	}

	project, err := uc.cfg.Projects.Parse(cmd.Project)
	if err != nil {
		return "", "", errors.NewValidationError(err.Error(),
			"allowed projects: "+strings.Join(uc.cfg.Projects.Names(), ", "))
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return "", "", errors.NewValidationError(err.Error())
	}

	if uc.cfg.MaxAttachments > 0 && len(cmd.Attachments) > uc.cfg.MaxAttachments {
		return "", "", errors.NewValidationError(
			fmt.Sprintf("too many attachments: at most %d files are allowed", uc.cfg.MaxAttachments))
	}

	return project, priority, nil
}

// storeAttachments saves every upload. When one fails the already stored files are
// removed again.
func (uc *CreateIssueUseCase) storeAttachments(ctx context.Context, uploads []AttachmentUpload) ([]string, error) {
	stored := make([]string, 0, len(uploads))

	rollback := func() {
		if len(stored) == 0 {
			return
		}
		if err := uc.attachments.Remove(stored...); err != nil {
			uc.logger.Warnw("failed to roll back stored attachments", "error", err)
		}
	}

	for _, upload := range uploads {
		name, err := uc.storeOne(ctx, upload)
		if err != nil {
			rollback()
			if errors.IsAppError(err) {
				return nil, err
			}
			uc.logger.Errorw("failed to store attachment", "filename", upload.Filename, "error", err)
			return nil, errors.NewInternalError("failed to store attachment")
		}
		stored = append(stored, name)
	}

	return stored, nil
}

func (uc *CreateIssueUseCase) storeOne(ctx context.Context, upload AttachmentUpload) (string, error) {
	r, err := upload.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", upload.Filename, err)
	}
	defer r.Close()

	return uc.attachments.Save(ctx, upload.Filename, upload.Size, r)
}

// appendHistory records a lifecycle entry. A failure is logged and never undoes the
// change it describes.
func appendHistory(ctx context.Context, history issue.HistoryLog, log logger.Interface, issueID uint, entry issue.HistoryEntry) {
	if err := history.Append(ctx, issueID, entry); err != nil {
		log.Warnw("failed to append issue history",
			"issue_id", issueID,
			"action", entry.Action,
			"error", err)
	}
}
