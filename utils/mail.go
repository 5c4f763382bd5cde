package utils

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
)

//go:embed templates/*.html
var templateFS embed.FS

type MailConfig struct {
	From     string
	Password string
	Host     string
	Address  string
}

type EmailRow struct {
	Label string
	Value string
}

type EmailData struct {
	Name    string
	Message string
	Rows    []EmailRow
}

type Mailer struct {
	cfg       MailConfig
	templates *template.Template
	sendMail  func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg MailConfig) (*Mailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("template parse error: %w", err)
	}
	return &Mailer{cfg: cfg, templates: tmpl, sendMail: smtp.SendMail}, nil
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (m *Mailer) Enabled() bool {
	return m.cfg.From != "" && m.cfg.Address != ""
}

func (m *Mailer) Render(templateName string, data EmailData) (string, error) {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

func (m *Mailer) SendEmail(emailTo, emailSubject, templateName string, data EmailData) error {
	body, err := m.Render(templateName, data)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.From,
		emailTo,
		emailSubject,
		body,
	)

	var auth smtp.Auth
	if m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	}

	if err := m.sendMail(m.cfg.Address, auth, m.cfg.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
