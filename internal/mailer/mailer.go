package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer delivers plain text mail over SMTP. Without a host it only logs.
type Mailer struct {
	cfg    Config
	client *mail.Client
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) (*Mailer, error) {
	logger = logger.Named("Mailer")
	if cfg.Host == "" {
		logger.Warn("SMTP host not set, mail will be logged instead of sent")
		return &Mailer{cfg: cfg, logger: logger}, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{cfg: cfg, client: client, logger: logger}, nil
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if m.client == nil {
		m.logger.Info("Mail not sent, SMTP disabled", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat("Auth Admin", m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Error("Failed to send mail", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("email could not be sent: %w", err)
	}
	return nil
}
