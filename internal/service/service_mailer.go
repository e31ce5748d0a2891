package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// sesAPI is the part of the SES client the mailer uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type sesMailer struct {
	client sesAPI
	sender string
	logger *logger.Logger
}

// NewMailer returns the SES mailer when a sender address is configured and
// a mailer that only logs otherwise.
func NewMailer(ctx context.Context, cfg *config.StructuredConfig, logger *logger.Logger) (Mailer, error) {
	if cfg.Mail.Sender == "" {
		logger.Info().Msg("no mail sender configured, mail is only logged")
		return NewLogMailer(logger), nil
	}

	awsCfg, err := utils.LoadAWSConfig(ctx, cfg.AWS.Region, cfg.AWS.Endpoint)
	if err != nil {
		return nil, err
	}
	return NewSESMailer(ses.NewFromConfig(awsCfg), cfg.Mail.Sender, logger), nil
}

func NewSESMailer(client sesAPI, sender string, logger *logger.Logger) Mailer {
	return &sesMailer{client: client, sender: sender, logger: logger}
}

func (m *sesMailer) Send(ctx context.Context, mail models.Mail) error {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(mail.Text), Charset: aws.String("UTF-8")},
	}
	if mail.HTML != "" {
		body.Html = &types.Content{Data: aws.String(mail.HTML), Charset: aws.String("UTF-8")}
	}

	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(m.sender),
		Destination: &types.Destination{ToAddresses: []string{mail.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(mail.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMailNotSent, err)
	}

	logger.FromContext(ctx).Info().
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Str("message_id", aws.ToString(out.MessageId)).
		Msg("mail sent")
	return nil
}

type logMailer struct {
	logger *logger.Logger
}

// NewLogMailer returns a Mailer that writes every message to the log.
func NewLogMailer(logger *logger.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(ctx context.Context, mail models.Mail) error {
	logger.FromContext(ctx).Info().
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Str("text", mail.Text).
		Msg("mail not sent, no sender configured")
	return nil
}
