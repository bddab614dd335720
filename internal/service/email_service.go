package service

import (
	"context"
	"fmt"
	"html"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"

	"spacefun/internal/achievements"
)

// SESAPI is the part of the SES client the email service calls.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     SESAPI
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service that logs and skips every send.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Info().Msg("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info().Str("from", fromEmail).Str("region", awsRegion).Msg("Email service enabled")
	return NewEmailServiceWithClient(sesv2.NewFromConfig(cfg), fromEmail, fromName, appBaseURL), nil
}

// NewEmailServiceWithClient builds an enabled service around an existing
// SES client.
func NewEmailServiceWithClient(client SESAPI, fromEmail, fromName, appBaseURL string) *EmailService {
	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

const emailStyle = `
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #003366; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #ff9900; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }`

func wrapHTML(heading, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>%s
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>%s</h1>
		</div>
		<div class="content">
%s
		</div>
		<div class="footer">
			<p>This is an automated email from SpaceFun. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, emailStyle, heading, content)
}

// SendWelcomeEmail greets a newly registered player's parent
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, childName string) error {
	if !s.enabled {
		log.Debug().Str("to", toEmail).Msg("Skipping welcome email (service disabled)")
		return nil
	}

	name := html.EscapeString(childName)
	subject := "Welcome to SpaceFun!"
	htmlBody := wrapHTML("Welcome aboard, "+name+"!", fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your SpaceFun account is ready. Spell words by tapping the letter tiles, earn a point for every word you get right, and unlock achievements on your way across the solar system.</p>
			<p style="text-align: center;">
				<a href="%s" class="button">Start Playing</a>
			</p>`, name, s.appBaseURL))

	textBody := fmt.Sprintf(`Hi %s,

Your SpaceFun account is ready. Spell words by tapping the letter tiles, earn a point for every word you get right, and unlock achievements on your way across the solar system.

Start playing: %s

---
This is an automated email from SpaceFun. Please do not reply.
`, childName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendAchievementEmail announces a newly unlocked achievement
func (s *EmailService) SendAchievementEmail(ctx context.Context, toEmail, childName string, a achievements.Achievement) error {
	if !s.enabled {
		log.Debug().Str("to", toEmail).Str("achievement", a.ID).Msg("Skipping achievement email (service disabled)")
		return nil
	}

	name := html.EscapeString(childName)
	subject := fmt.Sprintf("%s unlocked %s!", childName, a.Title)
	htmlBody := wrapHTML(a.Icon+" "+a.Title, fmt.Sprintf(`
			<p>Great news! %s just reached %d points and unlocked <strong>%s</strong>.</p>
			<p>%s</p>
			<p style="text-align: center;">
				<a href="%s" class="button">Keep Exploring</a>
			</p>`, name, a.RequiredScore, a.Title, html.EscapeString(a.Description), s.appBaseURL))

	textBody := fmt.Sprintf(`Great news! %s just reached %d points and unlocked %s.

%s

Keep exploring: %s

---
This is an automated email from SpaceFun. Please do not reply.
`, childName, a.RequiredScore, a.Title, a.Description, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	ev := log.Info().Str("to", toEmail).Str("subject", subject)
	if result != nil && result.MessageId != nil {
		ev = ev.Str("message_id", *result.MessageId)
	}
	ev.Msg("Email sent")
	return nil
}
