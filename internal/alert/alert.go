package alert

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

// Mailer отправляет письма о подозрительных транзакциях.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	frontend string
}

func NewMailerFromEnv() *Mailer {
	m := &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		frontend: os.Getenv("FRONTEND_URL"),
	}
	if m.host == "" {
		m.host = "smtp.gmail.com"
	}
	if m.port == "" {
		m.port = "587"
	}
	if m.frontend == "" {
		m.frontend = "https://bankofanthos.example.com"
	}
	return m
}

// SendSuspiciousAlert отправляет письмо на адрес из профиля.
// Вызывается в фоне, ошибки только логируются.
func (m *Mailer) SendSuspiciousAlert(email string, req *models.AnomalyCheckRequest, riskScore float64, reasons []string) {
	if email == "" {
		log.Printf("Для счёта %s не настроен адрес для оповещений", req.AccountID)
		return
	}

	from := m.username
	if from == "" {
		from = "no-reply@bankofanthos.local"
	}

	body := fmt.Sprintf(
		"Suspicious transaction detected\n\n"+
			"Account: %s\n"+
			"Amount: $%.2f\n"+
			"Recipient: %s\n"+
			"Risk score: %.2f\n\n"+
			"Reasons:\n - %s\n\n"+
			"To confirm, visit: %s/confirm/%s\n",
		req.AccountID,
		float64(req.AmountCents)/100,
		req.RecipientAccountID,
		riskScore,
		strings.Join(reasons, "\n - "),
		m.frontend,
		req.AccountID,
	)

	msg := []byte("From: " + from + "\r\n" +
		"To: " + email + "\r\n" +
		"Subject: Bank-of-Anthos: Suspicious Transaction\r\n" +
		"\r\n" + body)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.username != "" && m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, from, []string{email}, msg); err != nil {
		log.Printf("Не удалось отправить оповещение на %s: %v", email, err)
		return
	}
	log.Printf("Оповещение отправлено на %s", email)
}
