package dto

import (
	"time"

	"github.com/techflow/techflow/internal/domain/issue"
	"github.com/techflow/techflow/internal/shared/biztime"
	"github.com/techflow/techflow/internal/shared/mapper"
)

type IssueDTO struct {
	ID                  uint     `json:"id"`
	ReportID            string   `json:"report_id"`
	ClientName          string   `json:"client_name"`
	Phone               string   `json:"phone"`
	Email               string   `json:"email"`
	Project             string   `json:"project"`
	Description         string   `json:"description"`
	Images              []string `json:"images"`
	Status              string   `json:"status"`
	Priority            string   `json:"priority"`
	TechLevel           string   `json:"tech_level"`
	AssignedTo          string   `json:"assigned_to"`
	CreatedAt           string   `json:"created_at"`
	CreatedDate         string   `json:"created_date"`
	CreatedTime         string   `json:"created_time"`
	WorkStartAt         *string  `json:"work_start_at"`
	WorkStartDate       *string  `json:"work_start_date"`
	WorkStartTime       *string  `json:"work_start_time"`
	CompletedAt         *string  `json:"completed_at"`
	CompletedDate       *string  `json:"completed_date"`
	CompletedTime       *string  `json:"completed_time"`
	ResolutionNotes     string   `json:"resolution_notes"`
	TotalResolutionTime string   `json:"total_resolution_time"`
	UpdatedAt           string   `json:"updated_at"`
	UpdatedBy           string   `json:"updated_by"`
}

// IssueTrackingDTO is what a client sees when looking up an issue by report code.
type IssueTrackingDTO struct {
	ReportID            string  `json:"report_id"`
	Project             string  `json:"project"`
	Status              string  `json:"status"`
	Priority            string  `json:"priority"`
	TechLevel           string  `json:"tech_level"`
	AssignedTo          string  `json:"assigned_to"`
	CreatedAt           string  `json:"created_at"`
	WorkStartAt         *string `json:"work_start_at"`
	CompletedAt         *string `json:"completed_at"`
	ResolutionNotes     string  `json:"resolution_notes"`
	TotalResolutionTime string  `json:"total_resolution_time"`
}

type HistoryEntryDTO struct {
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	PerformedBy string    `json:"performed_by"`
}

type StatsDTO struct {
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"by_status"`
	ByPriority  map[string]int `json:"by_priority"`
	ByTechLevel map[string]int `json:"by_tech_level"`
}

func ToIssueDTO(i *issue.Issue) *IssueDTO {
	if i == nil {
		return nil
	}

	d := &IssueDTO{
		ID:                  i.ID(),
		ReportID:            i.ReportCode(),
		ClientName:          i.ClientName(),
		Phone:               i.Phone(),
		Email:               i.Email(),
		Project:             i.Project().String(),
		Description:         i.Description(),
		Images:              i.Attachments(),
		Status:              i.Status().String(),
		Priority:            i.Priority().String(),
		TechLevel:           i.TechLevel().String(),
		AssignedTo:          i.AssignedTo(),
		CreatedAt:           biztime.Timestamp(i.CreatedAt()),
		CreatedDate:         biztime.Date(i.CreatedAt()),
		CreatedTime:         biztime.Clock(i.CreatedAt()),
		ResolutionNotes:     i.ResolutionNotes(),
		TotalResolutionTime: i.TotalResolutionTime(),
		UpdatedAt:           biztime.Timestamp(i.UpdatedAt()),
		UpdatedBy:           i.UpdatedBy(),
	}

	if started := i.StartedAt(); started != nil {
		d.WorkStartAt = strPtr(biztime.Timestamp(*started))
		d.WorkStartDate = strPtr(biztime.Date(*started))
		d.WorkStartTime = strPtr(biztime.Clock(*started))
	}
	if completed := i.CompletedAt(); completed != nil {
		d.CompletedAt = strPtr(biztime.Timestamp(*completed))
		d.CompletedDate = strPtr(biztime.Date(*completed))
		d.CompletedTime = strPtr(biztime.Clock(*completed))
	}

	return d
}

func ToIssueDTOs(issues []*issue.Issue) []*IssueDTO {
	return mapper.MapSlice(issues, ToIssueDTO)
}

func ToIssueTrackingDTO(i *issue.Issue) *IssueTrackingDTO {
	if i == nil {
		return nil
	}
	full := ToIssueDTO(i)
	return &IssueTrackingDTO{
		ReportID:            full.ReportID,
		Project:             full.Project,
		Status:              full.Status,
		Priority:            full.Priority,
		TechLevel:           full.TechLevel,
		AssignedTo:          full.AssignedTo,
		CreatedAt:           full.CreatedAt,
		WorkStartAt:         full.WorkStartAt,
		CompletedAt:         full.CompletedAt,
		ResolutionNotes:     full.ResolutionNotes,
		TotalResolutionTime: full.TotalResolutionTime,
	}
}

func ToHistoryEntryDTOs(entries []issue.HistoryEntry) []HistoryEntryDTO {
	out := mapper.MapSlice(entries, func(e issue.HistoryEntry) HistoryEntryDTO {
		return HistoryEntryDTO{
			Timestamp:   e.Timestamp,
			Action:      e.Action,
			Description: e.Description,
			PerformedBy: e.PerformedBy,
		}
	})
	if out == nil {
		return []HistoryEntryDTO{}
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
