package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/techflow/techflow/internal/domain/issue"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/infrastructure/persistence/models"
	"github.com/techflow/techflow/internal/shared/biztime"
)

// IssueMapper converts between Issue entities and persistence models.
type IssueMapper interface {
	ToModel(i *issue.Issue) (*models.IssueModel, error)
	ToDomain(model *models.IssueModel) (*issue.Issue, error)
}

type IssueMapperImpl struct{}

func NewIssueMapper() IssueMapper {
	return &IssueMapperImpl{}
}

func (m *IssueMapperImpl) ToModel(i *issue.Issue) (*models.IssueModel, error) {
	images, err := json.Marshal(i.Attachments())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attachments (id=%d): %w", i.ID(), err)
	}

	model := &models.IssueModel{
		ID:                  i.ID(),
		ReportCode:          i.ReportCode(),
		ClientName:          i.ClientName(),
		Phone:               i.Phone(),
		Email:               i.Email(),
		Project:             i.Project().String(),
		Description:         i.Description(),
		Images:              images,
		Status:              i.Status().String(),
		Priority:            i.Priority().String(),
		TechLevel:           i.TechLevel().String(),
		AssignedTo:          i.AssignedTo(),
		CreatedAt:           i.CreatedAt().Unix(),
		ResolutionNotes:     i.ResolutionNotes(),
		TotalResolutionTime: i.TotalResolutionTime(),
		UpdatedAt:           i.UpdatedAt().Unix(),
		UpdatedBy:           i.UpdatedBy(),
	}

	if started := i.StartedAt(); started != nil {
		v := started.Unix()
		model.WorkStartAt = &v
	}
	if completed := i.CompletedAt(); completed != nil {
		v := completed.Unix()
		model.CompletedAt = &v
	}

	return model, nil
}

func (m *IssueMapperImpl) ToDomain(model *models.IssueModel) (*issue.Issue, error) {
	var images []string
	if len(model.Images) > 0 {
		if err := json.Unmarshal(model.Images, &images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attachments (id=%d): %w", model.ID, err)
		}
	}

	return issue.ReconstructIssue(issue.ReconstructParams{
		ID:                  model.ID,
		ReportCode:          model.ReportCode,
		ClientName:          model.ClientName,
		Phone:               model.Phone,
		Email:               model.Email,
		Project:             vo.Project(model.Project),
		Description:         model.Description,
		Attachments:         images,
		Status:              vo.IssueStatus(model.Status),
		Priority:            vo.Priority(model.Priority),
		TechLevel:           vo.TechLevel(model.TechLevel),
		CreatedAt:           unixToBizTime(model.CreatedAt),
		StartedAt:           unixPtrToBizTime(model.WorkStartAt),
		CompletedAt:         unixPtrToBizTime(model.CompletedAt),
		ResolutionNotes:     model.ResolutionNotes,
		TotalResolutionTime: model.TotalResolutionTime,
		UpdatedAt:           unixToBizTime(model.UpdatedAt),
		UpdatedBy:           model.UpdatedBy,
	})
}

func unixToBizTime(sec int64) time.Time {
	return time.Unix(sec, 0).In(biztime.Location())
}

func unixPtrToBizTime(sec *int64) *time.Time {
	if sec == nil {
		return nil
	}
	t := unixToBizTime(*sec)
	return &t
}
