package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// Config holds SMTP settings for the notification service
type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
}

// Service sends workflow notification emails via SMTP
type Service struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// NotificationData holds the data for workflow notification emails
type NotificationData struct {
	Recipient string // destination address
	Subject   string
	Headline  string
	Lines     []string // body paragraphs, already human-readable
}

// NewService creates a new email service
func NewService(cfg Config) *Service {
	from := cfg.FromEmail
	if from == "" {
		from = cfg.Username
	}
	return &Service{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: from,
	}
}

// IsConfigured reports whether the service has enough settings to send
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// notificationTemplate is the HTML template for workflow notifications
const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .line { margin-bottom: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Headline}}</h1>
        </div>
        <div class="content">
            {{range .Lines}}<div class="line">{{.}}</div>
            {{end}}
        </div>
        <div class="footer">
            <p>This email was sent by the staffing operations system. Do not reply.</p>
        </div>
    </div>
</body>
</html>`

// Send delivers a workflow notification. Callers treat failures as
// best-effort: a lost email never blocks a transition.
func (s *Service) Send(data NotificationData) error {
	tmpl, err := template.New("notification").Parse(notificationTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		data.Recipient,
		data.Subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := s.host + ":" + s.port

	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{data.Recipient}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
