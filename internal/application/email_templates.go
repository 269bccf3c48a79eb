package application

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
	"time"
)

const emailLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #1f2937; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #2563eb; color: #ffffff; padding: 24px; border-radius: 8px 8px 0 0; }
.content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
.box { background: #ffffff; border-left: 4px solid #2563eb; padding: 16px; margin: 16px 0; }
.feedback { background: #fef3c7; border-left: 4px solid #f59e0b; padding: 16px; margin: 16px 0; }
.footer { font-size: 12px; color: #9ca3af; margin-top: 24px; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>{{template "heading" .}}</h1></div>
<div class="content">
{{template "body" .}}
<div class="footer">
<p>Best regards,<br><strong>{{.LabName}} Team</strong></p>
<p>This is an automated message. Please do not reply to this email.</p>
</div>
</div>
</div>
</body>
</html>`

const confirmationBody = `{{define "heading"}}Project Submitted Successfully!{{end}}
{{define "body"}}
<p>Dear <strong>{{.StudentName}}</strong>,</p>
<p>Thank you for submitting your project proposal to the {{.LabName}}! Your submission has been received and is now pending faculty review.</p>
<div class="box">
<h2>Submission Details</h2>
<ul>
<li><strong>Project Title:</strong> {{.ProjectTitle}}</li>
<li><strong>Submission ID:</strong> {{.ShortID}}</li>
<li><strong>Status:</strong> Pending Review</li>
<li><strong>Submitted:</strong> {{.Date}}</li>
</ul>
</div>
<h3>What's Next?</h3>
<p>Our faculty members will review your proposal within <strong>3-5 business days</strong>. You will receive an email notification once your project has been reviewed with feedback and next steps.</p>
{{end}}`

const statusUpdateBody = `{{define "heading"}}Project Status Update{{end}}
{{define "body"}}
<p>Dear <strong>{{.StudentName}}</strong>,</p>
<p>We have an update regarding your project submission:</p>
<div class="box">
<p><strong>Project:</strong> {{.ProjectTitle}}</p>
<p><strong>New Status:</strong> {{.StatusLabel}}</p>
</div>
{{if .Comments}}<div class="feedback">
<h3>Faculty Feedback</h3>
<p>{{.Comments}}</p>
</div>{{end}}
{{if eq .Status "approved"}}<p><strong>Congratulations!</strong> Your project has been approved. You can now proceed with the implementation. Please coordinate with the lab in-charge for equipment allocation and lab access.</p>{{end}}
{{if eq .Status "under_review"}}<p>Your project is currently being reviewed by our faculty. We will update you soon with the outcome.</p>{{end}}
{{end}}`

const newProjectBody = `{{define "heading"}}New Project Submission{{end}}
{{define "body"}}
<p>Dear <strong>{{.AdminName}}</strong>,</p>
<p>A new project proposal has been submitted and requires your review:</p>
<div class="box">
<h3>{{.ProjectTitle}}</h3>
<p><strong>Student:</strong> {{.StudentName}}</p>
<p><strong>Category:</strong> {{.Category}}</p>
<p><strong>Submitted:</strong> {{.Date}}</p>
</div>
<p><a href="{{.DashboardURL}}">Review in the admin dashboard</a></p>
{{end}}`

// emailTemplates holds one parsed layout per message kind.
type emailTemplates struct {
	confirmation *template.Template
	statusUpdate *template.Template
	newProject   *template.Template
}

func parseEmailTemplates() *emailTemplates {
	parse := func(name, body string) *template.Template {
		return template.Must(template.Must(template.New(name).Parse(emailLayout)).Parse(body))
	}
	return &emailTemplates{
		confirmation: parse("project_confirmation", confirmationBody),
		statusUpdate: parse("status_update", statusUpdateBody),
		newProject:   parse("new_project_admin", newProjectBody),
	}
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var (
	styleBlock  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptBlock = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	anyTag      = regexp.MustCompile(`<[^>]+>`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// HTMLToText derives a plain-text body by dropping style and script blocks,
// stripping tags and collapsing whitespace.
func HTMLToText(html string) string {
	s := styleBlock.ReplaceAllString(html, "")
	s = scriptBlock.ReplaceAllString(s, "")
	s = anyTag.ReplaceAllString(s, " ")
	s = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&#34;", `"`, "&#39;", "'", "&nbsp;", " ").Replace(s)
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func longDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
