package usecase

import (
	"context"
	"fmt"
	"time"

	"linkedin-autoposter/domain/repository"
	"linkedin-autoposter/infrastructure/logger"
)

const expiryDateLayout = "2006-01-02"

type ExpiryConfig struct {
	SiteName   string
	BaseURL    string
	AdminEmail string
}

// ExpiryMonitor warns the operator once per day while the token is about to expire.
type ExpiryMonitor struct {
	cfg    ExpiryConfig
	tokens repository.ITokenStore
	state  repository.IExpiryEmailState
	mailer repository.IMailer
	now    func() time.Time
}

func NewExpiryMonitor(cfg ExpiryConfig, tokens repository.ITokenStore, state repository.IExpiryEmailState, mailer repository.IMailer, now func() time.Time) *ExpiryMonitor {
	if now == nil {
		now = time.Now
	}
	return &ExpiryMonitor{cfg: cfg, tokens: tokens, state: state, mailer: mailer, now: now}
}

func (m *ExpiryMonitor) Check(ctx context.Context) error {
	log := logger.GetLogger()
	rec, err := m.tokens.Load(ctx)
	if err != nil {
		return err
	}
	now := m.now()
	if !rec.IsConnected(now) {
		return nil
	}
	days := rec.DaysLeft(now)
	if days >= ExpiryWarningDays {
		return m.state.Clear(ctx)
	}

	today := now.Format(expiryDateLayout)
	last, err := m.state.LastSentDate(ctx)
	if err != nil {
		return err
	}
	if last == today {
		return nil
	}
	subject, body := m.message(days)
	if err := m.mailer.Send(ctx, m.cfg.AdminEmail, subject, body); err != nil {
		log.WithField("error", err).Warn("Token expiry email failed")
	} else {
		log.WithField("days_left", days).Info("Token expiry email sent")
	}
	return m.state.SetLastSentDate(ctx, today)
}

func (m *ExpiryMonitor) message(days int) (string, string) {
	subject := fmt.Sprintf("[%s] LinkedIn Autoposter token expires in %d days", m.cfg.SiteName, days)
	body := fmt.Sprintf(
		"Your LinkedIn access token for %s expires in %d days.\n\n"+
			"Posts will stop being shared to LinkedIn once it expires. Reconnect here:\n%s/auth/linkedin\n",
		m.cfg.SiteName, days, m.cfg.BaseURL)
	return subject, body
}
