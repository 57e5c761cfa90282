package mailer

import (
	"fmt"
	"lms/config"
	"log"
	"net/smtp"
	"strings"
)

// Mailer sends transactional mail. Sends run in a goroutine and failures are
// logged only: mail never blocks or fails the request that triggered it.
type Mailer struct{}

func New() *Mailer {
	return &Mailer{}
}

// SendEmail sends a generic HTML email
func (m *Mailer) SendEmail(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.EmailSender == "" {
		log.Println("Mailer: EMAIL_SENDER not configured, skipping send")
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Course Platform <%s>\r\n", cfg.EmailSender)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", cfg.EmailSender, cfg.Password, cfg.SMTPHost)

	err := smtp.SendMail(cfg.SMTPHost+":"+cfg.SMTPPort, auth, cfg.EmailSender, to, []byte(msg))
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}

// CertificateIssued emails the student their new certificate.
func (m *Mailer) CertificateIssued(email, name, courseTitle, number, url string) {
	subject := "Your certificate for " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<p>Your certificate number is <strong>%s</strong>. Anyone can verify it on the
		certificate validation page using this number.</p>
		<p><a class="btn" href="%s">Download your certificate</a></p>
	`, name, courseTitle, number, url)

	go m.SendEmail([]string{email}, subject, emailTemplate("Certificate Issued", body))
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #21264D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #21264D; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #d7b56d; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>COURSE PLATFORM</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Course Platform. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
