package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService delivers transactional mail.
type EmailService interface {
	SendPasswordResetOTP(ctx context.Context, toEmail, toName, code string) error
}

// Config selects and configures a provider.
type Config struct {
	Provider       string
	FromName       string
	FromEmail      string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SMTPUseTLS     bool
	SendgridAPIKey string
	// SendgridHost overrides the API host; tests point it at a local server.
	SendgridHost string
}

// Message is a rendered email.
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

const passwordResetSubject = "Password Reset OTP"

var otpTemplate = template.Must(template.New("otp").Parse(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<p>Hello {{.Name}},</p>
		<p>Your OTP for password reset is: <strong>{{.Code}}</strong></p>
		<p>If you did not request a password reset, please ignore this email.</p>
	</div>
</body>
</html>`))

// NewPasswordResetMessage renders the OTP email.
func NewPasswordResetMessage(toEmail, toName, code string) (*Message, error) {
	var html strings.Builder
	if err := otpTemplate.Execute(&html, struct{ Name, Code string }{toName, code}); err != nil {
		return nil, fmt.Errorf("failed to render otp email: %w", err)
	}
	return &Message{
		ToEmail:  toEmail,
		ToName:   toName,
		Subject:  passwordResetSubject,
		TextBody: fmt.Sprintf("Your OTP for password reset is: %s", code),
		HTMLBody: html.String(),
	}, nil
}

// sender is the provider-specific transport.
type sender interface {
	send(ctx context.Context, msg *Message) error
}

// EmailServiceImpl renders messages and hands them to a transport.
type EmailServiceImpl struct {
	transport sender
	logger    zerolog.Logger
}

// NewEmailService builds the service for cfg.Provider. Unknown or
// unconfigured providers fall back to logging the message.
func NewEmailService(cfg Config, logger zerolog.Logger) EmailService {
	var transport sender
	switch strings.ToLower(cfg.Provider) {
	case "smtp":
		transport = &smtpSender{config: cfg, logger: logger}
	case "sendgrid":
		transport = newSendgridSender(cfg, logger)
	default:
		transport = &logSender{logger: logger}
	}
	return &EmailServiceImpl{transport: transport, logger: logger}
}

// SendPasswordResetOTP sends the OTP to the user.
func (s *EmailServiceImpl) SendPasswordResetOTP(ctx context.Context, toEmail, toName, code string) error {
	msg, err := NewPasswordResetMessage(toEmail, toName, code)
	if err != nil {
		return err
	}
	if err := s.transport.send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send password reset email")
		return err
	}
	s.logger.Info().Str("toEmail", toEmail).Msg("Password reset email sent")
	return nil
}

type logSender struct {
	logger zerolog.Logger
}

func (l *logSender) send(_ context.Context, msg *Message) error {
	l.logger.Warn().
		Str("toEmail", msg.ToEmail).
		Str("subject", msg.Subject).
		Str("body", msg.TextBody).
		Msg("Email delivery not configured - message logged instead of sent")
	return nil
}

type smtpSender struct {
	config Config
	logger zerolog.Logger
}

func (s *smtpSender) send(_ context.Context, msg *Message) error {
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	headers := []string{
		fmt.Sprintf("From: %s <%s>", s.config.FromName, s.config.FromEmail),
		"To: " + msg.ToEmail,
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	body := []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.HTMLBody)

	addr := s.config.SMTPHost + ":" + strconv.Itoa(s.config.SMTPPort)

	if !s.config.SMTPUseTLS {
		if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{msg.ToEmail}, body); err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.SMTPHost})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.SMTPHost)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if s.config.SMTPUsername != "" {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(msg.ToEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	return w.Close()
}
