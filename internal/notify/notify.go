package notify

import (
	"fmt"

	"github.com/cafeteca/cafeteca-server/config"
	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/guonaihong/gout"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Dispatcher fans a contact-form submission out to the configured SMTP
// recipient and webhook. Both targets are best effort: a failed dispatch is
// logged and dropped, never surfaced to the visitor.
type Dispatcher struct {
	smtp    config.SmtpConfig
	webhook config.WebhookConfig
}

func NewDispatcher(cfg *config.AppConfig) *Dispatcher {
	return &Dispatcher{smtp: cfg.Smtp, webhook: cfg.Webhook}
}

// SendContactMail delivers the submission to the staff mailbox.
func (d *Dispatcher) SendContactMail(msg domain.ContactMessage) {
	if d.smtp.Host == "" || d.smtp.To == "" {
		return
	}
	m := gomail.NewMessage()
	m.SetHeader("From", d.smtp.From)
	m.SetHeader("To", d.smtp.To)
	m.SetHeader("Reply-To", msg.Email)
	m.SetHeader("Subject", fmt.Sprintf("Mesaj nou de contact de la %s", msg.Name))
	m.SetBody("text/plain", fmt.Sprintf("Nume: %s\nEmail: %s\nTelefon: %s\n\n%s",
		msg.Name, msg.Email, msg.Phone, msg.Message))

	dialer := gomail.NewDialer(d.smtp.Host, d.smtp.Port, d.smtp.Username, d.smtp.Password)
	if err := dialer.DialAndSend(m); err != nil {
		zap.L().Warn("contact mail dispatch failed", zap.Error(err))
	}
}

// PostContactWebhook pushes the submission to the configured webhook URL.
func (d *Dispatcher) PostContactWebhook(msg domain.ContactMessage) {
	if d.webhook.ContactURL == "" {
		return
	}
	var code int
	err := gout.POST(d.webhook.ContactURL).
		SetJSON(gout.H{
			"name":    msg.Name,
			"email":   msg.Email,
			"phone":   msg.Phone,
			"message": msg.Message,
		}).
		Code(&code).
		Do()
	if err != nil || code >= 300 {
		zap.L().Warn("contact webhook dispatch failed",
			zap.Int("status", code), zap.Error(err))
	}
}
