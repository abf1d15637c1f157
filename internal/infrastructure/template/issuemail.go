// Package template renders the notification emails sent on issue lifecycle events.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/techflow/techflow/internal/application/issue/usecases"
	"github.com/techflow/techflow/internal/shared/biztime"
	"github.com/techflow/techflow/internal/shared/constants"
	"github.com/techflow/techflow/internal/shared/logger"
	"github.com/techflow/techflow/internal/shared/services/markdown"
)

//go:embed mail/*.html
var mailFS embed.FS

type eventTemplate struct {
	file    string
	heading string
	subject string
}

var eventTemplates = map[usecases.NotificationEvent]eventTemplate{
	usecases.EventIssueCreated: {
		file: "mail/issue_created.html", heading: "Issue Received", subject: "Issue received",
	},
	usecases.EventTechLevelChanged: {
		file: "mail/tech_level_changed.html", heading: "Issue Escalated", subject: "Tech level updated",
	},
	usecases.EventWorkStarted: {
		file: "mail/work_started.html", heading: "Work Started", subject: "Work started",
	},
	usecases.EventIssueCompleted: {
		file: "mail/issue_completed.html", heading: "Issue Resolved", subject: "Issue resolved",
	},
}

type mailData struct {
	AppName             string
	Heading             string
	ClientName          string
	ReportCode          string
	Project             string
	Priority            string
	Status              string
	TechLevel           string
	PreviousTechLevel   string
	AssignedTo          string
	CreatedAt           string
	StartedAt           string
	CompletedAt         string
	TotalResolutionTime string
	Description         template.HTML
	ResolutionNotes     template.HTML
	TrackURL            string
}

// IssueMailRenderer turns lifecycle notifications into HTML emails. Client supplied
// fields are escaped by html/template; description and resolution notes are rendered
// from markdown and sanitized first.
type IssueMailRenderer struct {
	templates map[usecases.NotificationEvent]*template.Template
	markdown  markdown.MarkdownService
	baseURL   string
	logger    logger.Interface
}

func NewIssueMailRenderer(md markdown.MarkdownService, baseURL string, logger logger.Interface) (*IssueMailRenderer, error) {
	r := &IssueMailRenderer{
		templates: make(map[usecases.NotificationEvent]*template.Template, len(eventTemplates)),
		markdown:  md,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
	}

	for event, et := range eventTemplates {
		tmpl, err := template.ParseFS(mailFS, "mail/layout.html", et.file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mail template %s: %w", et.file, err)
		}
		r.templates[event] = tmpl
	}

	logger.Debugw("mail templates loaded", "count", len(r.templates))
	return r, nil
}

func (r *IssueMailRenderer) Render(n usecases.IssueNotification) (string, string, error) {
	if n.Issue == nil {
		return "", "", fmt.Errorf("notification has no issue")
	}
	et, ok := eventTemplates[n.Event]
	if !ok {
		return "", "", fmt.Errorf("unknown notification event %q", n.Event)
	}

	i := n.Issue
	data := mailData{
		AppName:             constants.AppName,
		Heading:             et.heading,
		ClientName:          i.ClientName(),
		ReportCode:          i.ReportCode(),
		Project:             i.Project().String(),
		Priority:            i.Priority().String(),
		Status:              i.Status().String(),
		TechLevel:           i.TechLevel().String(),
		PreviousTechLevel:   n.PreviousTechLevel.String(),
		AssignedTo:          i.AssignedTo(),
		CreatedAt:           biztime.Timestamp(i.CreatedAt()),
		TotalResolutionTime: i.TotalResolutionTime(),
		Description:         r.renderMarkdown(i.Description()),
		ResolutionNotes:     r.renderMarkdown(i.ResolutionNotes()),
	}
	if started := i.StartedAt(); started != nil {
		data.StartedAt = biztime.Timestamp(*started)
	}
	if completed := i.CompletedAt(); completed != nil {
		data.CompletedAt = biztime.Timestamp(*completed)
	}
	if r.baseURL != "" {
		data.TrackURL = r.baseURL + "/?report=" + i.ReportCode()
	}

	var buf bytes.Buffer
	if err := r.templates[n.Event].ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", "", fmt.Errorf("failed to render %s mail: %w", n.Event, err)
	}

	subject := fmt.Sprintf("[%s] %s - %s", i.ReportCode(), et.subject, constants.AppName)
	return subject, buf.String(), nil
}

// renderMarkdown falls back to escaped plain text when conversion fails.
func (r *IssueMailRenderer) renderMarkdown(s string) template.HTML {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	out, err := r.markdown.ToHTMLSanitized(s)
	if err != nil {
		r.logger.Warnw("markdown rendering failed, using plain text", "error", err)
		return template.HTML("<p>" + template.HTMLEscapeString(s) + "</p>")
	}
	return template.HTML(out)
}
