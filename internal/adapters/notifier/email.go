package notifier

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jedzonko/recipes-api/internal/config"
	"github.com/jedzonko/recipes-api/internal/logger"
)

// EmailNotifier delivers mail over SMTP.
type EmailNotifier struct {
	cfg    config.SMTP
	logger *logger.Logger
}

func NewEmailNotifier(cfg config.SMTP, logger *logger.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		logger: logger,
	}
}

func (n *EmailNotifier) Send(to, subject, body string) error {
	if n.cfg.Host == "" || n.cfg.User == "" {
		n.logger.Warn("smtp config missing, skip notification", "to", to)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	n.logger.Info("email sent", "to", to, "subject", subject)
	return nil
}
