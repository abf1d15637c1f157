package issue

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techflow/techflow/internal/application/issue/usecases"
	"github.com/techflow/techflow/internal/shared/constants"
	"github.com/techflow/techflow/internal/shared/logger"
	"github.com/techflow/techflow/internal/shared/utils"
)

// AttachmentResolver maps a stored attachment name to a file on disk.
type AttachmentResolver interface {
	Path(name string) (string, error)
}

type UseCases struct {
	CreateIssue   usecases.CreateIssueExecutor
	SetTechLevel  usecases.SetTechLevelExecutor
	StartWork     usecases.StartWorkExecutor
	CompleteIssue usecases.CompleteIssueExecutor
	GetIssue      usecases.GetIssueExecutor
	LookupIssue   usecases.LookupIssueExecutor
	ListIssues    usecases.ListIssuesExecutor
	GetHistory    usecases.GetHistoryExecutor
	GetStats      usecases.GetStatsExecutor
	ExportIssues  usecases.ExportIssuesExecutor
	PrintIssues   usecases.PrintIssuesExecutor
	ResetIssues   usecases.ResetIssuesExecutor
}

type IssueHandler struct {
	uc          UseCases
	attachments AttachmentResolver
	logger      logger.Interface
}

func NewIssueHandler(uc UseCases, attachments AttachmentResolver, logger logger.Interface) *IssueHandler {
	return &IssueHandler{
		uc:          uc,
		attachments: attachments,
		logger:      logger,
	}
}

// CreateIssue handles POST /api/issues
// @Summary Report an issue
// @Description Multipart form with client details and up to 10 images (images or image_N fields)
// @Tags Issues
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Client name"
// @Param phone formData string true "Phone"
// @Param email formData string true "Email"
// @Param project formData string true "Project"
// @Param priority formData string true "Priority (Low, Medium, High)"
// @Param description formData string true "Description"
// @Param images formData file false "Screenshots"
// @Success 201 {object} utils.APIResponse{data=CreateIssueResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /api/issues [post]
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	cmd := createCommandFromForm(c)

	result, err := h.uc.CreateIssue.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, CreateIssueResponse{
		ID:       result.IssueID,
		ReportID: result.ReportID,
	}, "Issue reported successfully")
}

// ListIssues handles GET /api/issues
// @Summary List issues
// @Tags Issues
// @Produce json
// @Param status query string false "Pending, In Progress or Completed"
// @Param priority query string false "Low, Medium or High"
// @Param tech_level query string false "L1, L2 or L3"
// @Param project query string false "Project"
// @Param q query string false "Search in name, description and report ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.IssueDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /api/issues [get]
func (h *IssueHandler) ListIssues(c *gin.Context) {
	var req ListIssuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.ListIssues.Execute(c.Request.Context(), req.ToQuery())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetStats handles GET /api/issues/stats
// @Summary Issue counts
// @Tags Issues
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dto.StatsDTO}
// @Router /api/issues/stats [get]
func (h *IssueHandler) GetStats(c *gin.Context) {
	result, err := h.uc.GetStats.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetIssue handles GET /api/issues/:id
// @Summary Get issue
// @Tags Issues
// @Produce json
// @Param id path int true "Issue ID"
// @Success 200 {object} utils.APIResponse{data=dto.IssueDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /api/issues/{id} [get]
func (h *IssueHandler) GetIssue(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.GetIssue.Execute(c.Request.Context(), usecases.GetIssueQuery{IssueID: issueID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// LookupIssue handles GET /api/issues/lookup/:report_code
// @Summary Track an issue by report ID
// @Tags Issues
// @Produce json
// @Param report_code path string true "Report ID"
// @Success 200 {object} utils.APIResponse{data=dto.IssueTrackingDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /api/issues/lookup/{report_code} [get]
func (h *IssueHandler) LookupIssue(c *gin.Context) {
	query := usecases.LookupIssueQuery{ReportCode: c.Param("report_code")}

	result, err := h.uc.LookupIssue.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// SetTechLevel handles PUT /api/issues/:id/tech_level
// @Summary Change tech level
// @Tags Issues
// @Accept json
// @Produce json
// @Param id path int true "Issue ID"
// @Param request body SetTechLevelRequest true "New tech level"
// @Success 200 {object} utils.APIResponse{data=dto.IssueDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/issues/{id}/tech_level [put]
func (h *IssueHandler) SetTechLevel(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetTechLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set tech level", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.SetTechLevel.Execute(c.Request.Context(), usecases.SetTechLevelCommand{
		IssueID:     issueID,
		TechLevel:   req.TechLevel,
		PerformedBy: req.PerformedBy,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tech level updated", result)
}

// StartWork handles PUT /api/issues/:id/start
// @Summary Start work on an issue
// @Tags Issues
// @Accept json
// @Produce json
// @Param id path int true "Issue ID"
// @Param request body StartWorkRequest false "Actor"
// @Success 200 {object} utils.APIResponse{data=dto.IssueDTO}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/issues/{id}/start [put]
func (h *IssueHandler) StartWork(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req StartWorkRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.StartWork.Execute(c.Request.Context(), usecases.StartWorkCommand{
		IssueID:     issueID,
		PerformedBy: req.PerformedBy,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work started", result)
}

// CompleteIssue handles PUT /api/issues/:id/complete
// @Summary Complete an issue
// @Tags Issues
// @Accept json
// @Produce json
// @Param id path int true "Issue ID"
// @Param request body CompleteIssueRequest false "Resolution notes"
// @Success 200 {object} utils.APIResponse{data=dto.IssueDTO}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/issues/{id}/complete [put]
func (h *IssueHandler) CompleteIssue(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CompleteIssueRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.CompleteIssue.Execute(c.Request.Context(), usecases.CompleteIssueCommand{
		IssueID:         issueID,
		ResolutionNotes: req.ResolutionNotes,
		PerformedBy:     req.PerformedBy,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue completed", result)
}

// GetHistory handles GET /api/issues/:id/history
// @Summary Issue history
// @Tags Issues
// @Produce json
// @Param id path int true "Issue ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.HistoryEntryDTO}
// @Router /api/issues/{id}/history [get]
func (h *IssueHandler) GetHistory(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.GetHistory.Execute(c.Request.Context(), usecases.GetHistoryQuery{IssueID: issueID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetAttachment handles GET /api/attachments/:name
// @Summary Download an attachment
// @Tags Attachments
// @Produce octet-stream
// @Param name path string true "Stored file name"
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Router /api/attachments/{name} [get]
func (h *IssueHandler) GetAttachment(c *gin.Context) {
	path, err := h.attachments.Path(c.Param("name"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.File(path)
}

// Export handles GET /api/export
// @Summary Export all issues as a workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /api/export [get]
func (h *IssueHandler) Export(c *gin.Context) {
	result, err := h.uc.ExportIssues.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, constants.ContentTypeXLSX, result.Content)
}

// Print handles GET /api/print
// @Summary Write all issues to the server log
// @Tags Reports
// @Produce json
// @Success 200 {object} utils.APIResponse{data=usecases.PrintIssuesResult}
// @Router /api/print [get]
func (h *IssueHandler) Print(c *gin.Context) {
	result, err := h.uc.PrintIssues.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issues printed to server log", result)
}

// Reset handles POST /api/reset
// @Summary Delete all issues, history and attachments
// @Tags Maintenance
// @Produce json
// @Success 200 {object} utils.APIResponse{data=ResetResponse}
// @Failure 500 {object} utils.APIResponse
// @Router /api/reset [post]
func (h *IssueHandler) Reset(c *gin.Context) {
	if err := h.uc.ResetIssues.Execute(c.Request.Context()); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Warnw("all issue data reset", "username", c.GetString(constants.ContextKeyUsername))
	utils.SuccessResponse(c, http.StatusOK, "All issue data has been reset", ResetResponse{Reset: true})
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, target any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(target)
}
