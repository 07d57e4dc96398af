package mail

import (
	"context"
	"log/slog"

	"bookcars/internal/pkg/config"
	"bookcars/internal/pkg/errs"

	"github.com/sendgrid/sendgrid-go"
	helpers "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var errSendFailed = errs.New("failed to send email")

type SendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	sandbox   bool
}

func NewSendGridMailer(cfg config.Config) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(cfg.SendGrid.APIKey),
		fromEmail: cfg.SendGrid.FromEmail,
		fromName:  cfg.SendGrid.FromName,
		// Sandbox mode stays on unless explicitly switched off, so dev and
		// test environments never deliver real mail.
		sandbox: !cfg.SendGrid.SandboxOff,
	}
}

func (m *SendGridMailer) buildMessage(toEmail, toName, subject, plainText, htmlContent string) *helpers.SGMailV3 {
	from := helpers.NewEmail(m.fromName, m.fromEmail)
	to := helpers.NewEmail(toName, toEmail)
	message := helpers.NewSingleEmail(from, subject, to, plainText, htmlContent)

	if m.sandbox {
		settings := helpers.NewMailSettings()
		settings.SetSandboxMode(helpers.NewSetting(true))
		message = message.SetMailSettings(settings)
	}
	return message
}

func (m *SendGridMailer) Send(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	message := m.buildMessage(toEmail, toName, subject, plainText, htmlContent)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return errs.Mark(err, errSendFailed)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		slog.Error("sendgrid rejected message",
			"status", response.StatusCode,
			"body", response.Body)
		return errSendFailed
	}
	return nil
}
