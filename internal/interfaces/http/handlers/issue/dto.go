package issue

import (
	"io"
	"mime/multipart"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techflow/techflow/internal/application/issue/usecases"
)

type SetTechLevelRequest struct {
	TechLevel   string `json:"tech_level" binding:"required"`
	PerformedBy string `json:"performed_by" binding:"omitempty,max=100"`
}

type StartWorkRequest struct {
	PerformedBy string `json:"performed_by" binding:"omitempty,max=100"`
}

type CompleteIssueRequest struct {
	ResolutionNotes string `json:"resolution_notes" binding:"omitempty,max=10000"`
	PerformedBy     string `json:"performed_by" binding:"omitempty,max=100"`
}

type CreateIssueResponse struct {
	ID       uint   `json:"id"`
	ReportID string `json:"report_id"`
}

type ResetResponse struct {
	Reset bool `json:"reset"`
}

// ListIssuesRequest carries the dashboard filters from the query string.
type ListIssuesRequest struct {
	Status    string `form:"status"`
	Priority  string `form:"priority"`
	TechLevel string `form:"tech_level"`
	Project   string `form:"project"`
	Search    string `form:"q"`
}

func (r *ListIssuesRequest) ToQuery() usecases.ListIssuesQuery {
	return usecases.ListIssuesQuery{
		Status:    r.Status,
		Priority:  r.Priority,
		TechLevel: r.TechLevel,
		Project:   r.Project,
		Search:    r.Search,
	}
}

// createCommandFromForm reads the multipart (or urlencoded) create form. Files are taken
// from the "images" field and any "image_N" field, in field name order.
func createCommandFromForm(c *gin.Context) usecases.CreateIssueCommand {
	cmd := usecases.CreateIssueCommand{
		ClientName:  c.PostForm("name"),
		Phone:       c.PostForm("phone"),
		Email:       c.PostForm("email"),
		Project:     c.PostForm("project"),
		Priority:    c.PostForm("priority"),
		Description: c.PostForm("description"),
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return cmd
	}

	keys := make([]string, 0, len(form.File))
	for key := range form.File {
		if key == "images" || strings.HasPrefix(key, "image_") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, fh := range form.File[key] {
			if fh.Filename == "" {
				continue
			}
			cmd.Attachments = append(cmd.Attachments, toUpload(fh))
		}
	}
	return cmd
}

func toUpload(fh *multipart.FileHeader) usecases.AttachmentUpload {
	return usecases.AttachmentUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
