package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strings"

	"truefeedback/internal/config"
)

const verificationTemplate = `<html>
<body style="font-family: sans-serif;">
  <h2>Hello {{.Username}},</h2>
  <p>Thank you for registering with True Feedback. Use the following code to verify your account:</p>
  <p style="font-size: 24px; letter-spacing: 4px;"><strong>{{.Code}}</strong></p>
  <p>The code expires in one hour. If you did not request this, please ignore this email.</p>
</body>
</html>`

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool

	verifyTmpl *template.Template
}

func NewMailService(cfg config.SMTPConfig) *MailService {
	enabled := cfg.Host != "" && cfg.Port != "" && cfg.Username != "" && cfg.Password != "" && cfg.From != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:       cfg.Host,
		Port:       cfg.Port,
		Username:   cfg.Username,
		Password:   cfg.Password,
		From:       cfg.From,
		Enabled:    enabled,
		verifyTmpl: template.Must(template.New("verification").Parse(verificationTemplate)),
	}
}

// sendAsync delivers in a goroutine. Mail failure never rolls back committed
// state; it is logged and the sender can re-register to get a fresh code.
func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: True Feedback <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		} else {
			log.Printf("Email sent to %v: %s", to, subject)
		}
	}()
}

func (s *MailService) SendVerificationEmail(email, username, code string) {
	var buf bytes.Buffer
	if err := s.verifyTmpl.Execute(&buf, map[string]string{
		"Username": username,
		"Code":     code,
	}); err != nil {
		log.Printf("Error rendering verification email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "True Feedback | verification code", buf.String())
}
