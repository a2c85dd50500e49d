package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strings"
)

// EmailSender delivers one rendered notification.
type EmailSender interface {
	Send(ctx context.Context, notification *EmailNotification) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type smtpSender struct {
	config    *SMTPConfig
	templates map[NotificationType]*template.Template
}

func NewSMTPSender(config *SMTPConfig) (EmailSender, error) {
	if config == nil || config.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}
	if config.FromName == "" {
		config.FromName = "Lab Workbench"
	}

	sender := &smtpSender{
		config:    config,
		templates: make(map[NotificationType]*template.Template),
	}
	sender.loadTemplates()
	return sender, nil
}

func (s *smtpSender) Send(ctx context.Context, notification *EmailNotification) error {
	body, err := s.renderBody(notification)
	if err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	message := s.buildMessage(notification.RecipientEmail, notification.Subject, body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{notification.RecipientEmail}, message); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	log.Printf("📧 [SMTP] Sent %s to %s", notification.Type, notification.RecipientEmail)
	return nil
}

func (s *smtpSender) buildMessage(to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

func (s *smtpSender) renderBody(notification *EmailNotification) (string, error) {
	tmpl, ok := s.templates[notification.Type]
	if !ok {
		return fmt.Sprintf("<p>Hello %s,</p><p>%s</p>",
			template.HTMLEscapeString(notification.RecipientName),
			template.HTMLEscapeString(notification.Subject)), nil
	}

	data := map[string]interface{}{
		"Name": notification.RecipientName,
	}
	for k, v := range notification.TemplateData {
		data[k] = v
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *smtpSender) loadTemplates() {
	s.templates[NotificationTypeAccountApproved] = template.Must(template.New("account_approved").Parse(`
<p>Hello {{.Name}},</p>
<p>Your lab workbench account has been approved. You can now browse bench
calendars and submit reservation requests.</p>
`))

	s.templates[NotificationTypeAccountRejected] = template.Must(template.New("account_rejected").Parse(`
<p>Hello {{.Name}},</p>
<p>Unfortunately your lab workbench registration was not approved.</p>
{{if .Comment}}<p>Reason: {{.Comment}}</p>{{end}}
<p>Contact a lab administrator if you believe this is a mistake.</p>
`))

	s.templates[NotificationTypeScheduleApproved] = template.Must(template.New("schedule_approved").Parse(`
<p>Hello {{.Name}},</p>
<p>Your reservation request has been approved.</p>
{{if .Start}}<p>From {{.Start}} to {{.End}}.</p>{{end}}
`))

	s.templates[NotificationTypeScheduleRejected] = template.Must(template.New("schedule_rejected").Parse(`
<p>Hello {{.Name}},</p>
<p>Your reservation request was rejected.</p>
{{if .Comment}}<p>Reason: {{.Comment}}</p>{{end}}
<p>The requested time may no longer be available; check the calendar and
submit a new request.</p>
`))
}

// logSender is the fallback when SMTP is not configured: decisions are
// logged instead of mailed so local development needs no mail server.
type logSender struct{}

func NewLogSender() EmailSender {
	return logSender{}
}

func (logSender) Send(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [LOG] Would send %s to %s (%s): %s",
		notification.Type, notification.RecipientEmail, notification.RecipientName, notification.Subject)
	return nil
}
