package emails

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"hrms.io/infrastructure/env"
	"hrms.io/infrastructure/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type ResendSender struct {
	from   string
	client *resend.Client
}

// NewResendSender returns a sender whose Send fails with ErrSenderNotConfigured
// until RESEND_API_KEY is set.
func NewResendSender() *ResendSender {
	sender := &ResendSender{
		from: env.String("RESEND_DEFAULT_EMAIL", "HR Attendance <no-reply@hrms.io>"),
	}
	if apiKey := env.String("RESEND_API_KEY", ""); apiKey != "" {
		sender.client = resend.NewClient(apiKey)
	}
	return sender
}

func (rs *ResendSender) Send(message Message) error {
	if rs.client == nil {
		logger.Warning("resend api key not set, email not sent", logger.LoggerOptions{
			Key:  "template",
			Data: message.Template,
		})
		return ErrSenderNotConfigured
	}

	html, err := Render(message.Template, message.Data)
	if err != nil {
		logger.Error("failed to render email template", logger.LoggerOptions{
			Key:  "template",
			Data: message.Template,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}

	_, err = rs.client.Emails.Send(&resend.SendEmailRequest{
		From:    rs.from,
		To:      []string{message.To},
		Subject: message.Subject,
		Html:    html,
	})
	if err != nil {
		logger.Error("an error occured while trying to send email using resend service", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "template",
			Data: message.Template,
		})
		return fmt.Errorf("resend: %w", err)
	}
	logger.Info("email sent", logger.LoggerOptions{
		Key:  "template",
		Data: message.Template,
	})
	return nil
}

func Render(name string, data map[string]any) (string, error) {
	var buffer bytes.Buffer
	if err := templates.ExecuteTemplate(&buffer, name+".html", data); err != nil {
		return "", err
	}
	return buffer.String(), nil
}
