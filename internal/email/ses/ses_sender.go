// Package ses sends document links through Amazon SES v2.
package ses

import (
	"context"
	"fmt"
	"html"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"repairdesk/internal/config"
	"repairdesk/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, cfg config.EmailConfig) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(awsCfg),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
	}, nil
}

func (s *sesSender) SendDocumentLink(ctx context.Context, msg port.DocumentEmail) error {
	subject := fmt.Sprintf("Your %s %s from %s", msg.DocLabel, msg.Number, s.fromName)
	textBody := buildDocumentText(s.fromName, msg)
	htmlBody := buildDocumentHTML(s.fromName, msg)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func greetingName(msg port.DocumentEmail) string {
	if msg.ToName != "" {
		return msg.ToName
	}
	return "Customer"
}

func buildDocumentText(shop string, msg port.DocumentEmail) string {
	return fmt.Sprintf("Dear %s,\n\nYour %s %s is ready. Download it here:\n%s\n\nThe link expires after a limited time.\n\n%s",
		greetingName(msg), msg.DocLabel, msg.Number, msg.DownloadURL, shop)
}

func buildDocumentHTML(shop string, msg port.DocumentEmail) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <p>Dear %s,</p>
  <p>Your %s <strong>%s</strong> is ready.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #1D4ED8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download %s</a>
  </p>
  <p style="color: #999; font-size: 12px;">The link expires after a limited time.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`,
		html.EscapeString(greetingName(msg)),
		html.EscapeString(msg.DocLabel),
		html.EscapeString(msg.Number),
		html.EscapeString(msg.DownloadURL),
		html.EscapeString(msg.DocLabel),
		html.EscapeString(shop))
}
