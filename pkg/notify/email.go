package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"candlescan/config"
	"candlescan/pkg/logger"
)

type emailNotifier struct {
	cfg config.SMTP
	log *logger.Logger
}

// NewEmailNotifier sends alert mails through the configured SMTP relay.
func NewEmailNotifier(cfg config.SMTP, log *logger.Logger) Notifier {
	return &emailNotifier{cfg: cfg, log: log}
}

func (n *emailNotifier) Send(ctx context.Context, msg AlertMessage, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("From: %s\r\n", n.cfg.From))
	body.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(recipients, ", ")))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject()))
	body.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	body.WriteString(msg.Body())

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, n.cfg.From, recipients, []byte(body.String())); err != nil {
		return fmt.Errorf("failed to send alert mail: %w", err)
	}

	n.log.InfoContext(ctx, "Alert mail sent",
		logger.StringField("symbol", msg.Symbol),
		logger.IntField("recipients", len(recipients)),
	)
	return nil
}
