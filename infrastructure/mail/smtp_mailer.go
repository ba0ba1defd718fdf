package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"linkedin-autoposter/infrastructure/configuration"
	"linkedin-autoposter/infrastructure/logger"
)

const implicitTLSPort = 465

// SMTPMailer sends plain-text operator notifications.
type SMTPMailer struct {
	cfg configuration.Mail
}

func NewSMTPMailer(cfg configuration.Mail) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.cfg.Host == "" {
		return errors.New("smtp host not configured")
	}
	if to == "" {
		return errors.New("recipient is empty")
	}
	msg := buildMessage(m.cfg.From, to, subject, body, time.Now())
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	var err error
	if m.cfg.Port == implicitTLSPort {
		err = m.sendImplicitTLS(addr, auth, to, msg)
	} else {
		// STARTTLS is negotiated by SendMail when the server offers it
		err = smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
	}
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	logger.GetLogger().WithField("to", to).WithField("subject", subject).Info("Email sent")
	return nil
}

func (m *SMTPMailer) sendImplicitTLS(addr string, auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}
	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return client.Quit()
}

func buildMessage(from, to, subject, body string, now time.Time) []byte {
	var b bytes.Buffer
	headers := [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", subject},
		{"Date", now.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
	}
	for _, h := range headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h[0], h[1])
	}
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.Bytes()
}
