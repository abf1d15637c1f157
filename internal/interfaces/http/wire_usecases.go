package http

import (
	"github.com/techflow/techflow/internal/application/issue/usecases"
	vo "github.com/techflow/techflow/internal/domain/issue/valueobjects"
	"github.com/techflow/techflow/internal/infrastructure/export"
)

// allUseCases holds every issue use case. Fields are executor interfaces so the CLI and
// the handlers consume the same wiring.
type allUseCases struct {
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

func (c *Container) initUseCases() {
	repo := c.repos.issueRepo
	hist := c.repos.historyLog
	files := c.repos.attachments
	log := c.log.Named("issue")

	createCfg := usecases.CreateIssueConfig{
		Projects:         vo.NewProjectCatalog(c.cfg.Issues.Projects),
		ReportCodePrefix: c.cfg.Issues.ReportCodePrefix,
		MaxAttachments:   c.cfg.Storage.MaxAttachments,
	}

	c.ucs = &allUseCases{
		CreateIssue:   usecases.NewCreateIssueUseCase(repo, hist, files, c.dispatcher, createCfg, log),
		SetTechLevel:  usecases.NewSetTechLevelUseCase(repo, hist, c.dispatcher, log),
		StartWork:     usecases.NewStartWorkUseCase(repo, hist, c.dispatcher, log),
		CompleteIssue: usecases.NewCompleteIssueUseCase(repo, hist, c.dispatcher, log),
		GetIssue:      usecases.NewGetIssueUseCase(repo, log),
		LookupIssue:   usecases.NewLookupIssueUseCase(repo, log),
		ListIssues:    usecases.NewListIssuesUseCase(repo, log),
		GetHistory:    usecases.NewGetHistoryUseCase(hist, log),
		GetStats:      usecases.NewGetStatsUseCase(repo, log),
		ExportIssues:  usecases.NewExportIssuesUseCase(repo, hist, export.NewWorkbookWriter(), log),
		PrintIssues:   usecases.NewPrintIssuesUseCase(repo, log),
		ResetIssues:   usecases.NewResetIssuesUseCase(repo, hist, files, log),
	}
}
