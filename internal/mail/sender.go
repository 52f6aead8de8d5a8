package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/domodwyer/mailyak/v3"
	"go.uber.org/zap"

	"github.com/vietanh2810/ticket-order-api/internal/config"
	"github.com/vietanh2810/ticket-order-api/internal/domain"
)

// Sender delivers one verification mail.
type Sender interface {
	Send(ctx context.Context, m domain.VerificationMail) error
}

type SMTPSender struct {
	conf *config.MailConfig
}

func NewSMTPSender(conf *config.MailConfig) *SMTPSender {
	return &SMTPSender{conf: conf}
}

func (s *SMTPSender) Send(ctx context.Context, m domain.VerificationMail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.conf.Host, s.conf.Port)
	var auth smtp.Auth
	if s.conf.Username != "" {
		auth = smtp.PlainAuth("", s.conf.Username, s.conf.Password, s.conf.Host)
	}

	msg := mailyak.New(addr, auth)
	msg.To(m.Email)
	msg.From(s.conf.FromAddress)
	msg.FromName(s.conf.FromName)
	msg.Subject(verificationSubject)
	msg.HTML().Set(verificationBody(m))

	if err := msg.Send(); err != nil {
		return fmt.Errorf("msg.Send -> %w", err)
	}

	return nil
}

// LogSender writes the mail to the log instead of sending it.
type LogSender struct{}

func (LogSender) Send(_ context.Context, m domain.VerificationMail) error {
	zap.L().Info("verification mail",
		zap.String("to", m.Email),
		zap.String("subject", verificationSubject),
		zap.String("body", verificationBody(m)),
	)
	return nil
}

func NewSender(conf *config.MailConfig) Sender {
	if conf.Driver == "smtp" {
		return NewSMTPSender(conf)
	}
	return LogSender{}
}
