package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/nartaaboe/Solva/internal/config"
	"github.com/nartaaboe/Solva/internal/models"
	"github.com/sirupsen/logrus"
)

// Sender handles sending limit alerts via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendLimitAlert sends a notification that a transaction pushed its category
// over the configured limit.
func (s *Sender) SendLimitAlert(t *models.Transaction, limit *models.Limit) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.AlertEmail}
	e.Subject = fmt.Sprintf("Spending limit exceeded: %s", t.ExpenseCategory)

	body := fmt.Sprintf(
		"Transaction %d from account %s to account %s exceeded the spending limit.\n\n"+
			"Category: %s\n"+
			"Transaction sum: %s %s (%s %s)\n"+
			"Limit: %s %s, active since %s\n",
		t.ID, t.AccountFrom, t.AccountTo,
		t.ExpenseCategory,
		t.Sum, t.Currency, t.SumInReference, s.cfg.ReferenceCurrency,
		limit.LimitSum, limit.Currency, limit.LimitDateTime.Format("2006-01-02 15:04"),
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send alert to %s: %v", s.cfg.AlertEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Alert sent to %s: %s", s.cfg.AlertEmail, e.Subject)
	return nil
}
