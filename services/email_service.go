package services

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/house7784/golf-trip-app/config"
)

// EmailService sends transactional mail over SMTP. With no SMTP host
// configured every send is a silent no-op, which keeps local development
// mail-free.
type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	if s.cfg.SMTPHost == "" {
		return nil
	}

	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	tlsconfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
	}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		// Implicit TLS (port 465).
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("smtp tls dial failed: %w", err)
		}
		defer conn.Close()
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("smtp client creation failed: %w", err)
		}
	} else {
		// STARTTLS (port 587).
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp dial failed: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("smtp STARTTLS failed: %w", err)
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}
	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("smtp MAIL FROM failed: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp RCPT TO failed: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("smtp message write failed: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("smtp DATA close failed: %w", err)
	}
	return nil
}

func (s *EmailService) SendWelcomeEmail(userEmail, fullName string) error {
	subject := "Welcome to Golf Trip"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your account is ready. Set your handicap index in your profile so your net scores come out right.</p>",
		fullName)
	return s.SendEmail([]string{userEmail}, subject, body)
}

func (s *EmailService) SendEventInviteEmail(userEmail, eventName, token string) error {
	subject := fmt.Sprintf("You are invited to %s", eventName)
	link := fmt.Sprintf("%s/join?token=%s", s.cfg.PublicURL, token)
	body := fmt.Sprintf(
		"<p>You have been invited to join <b>%s</b>.</p><p><a href=\"%s\">Accept the invite</a> (the link expires in 7 days).</p>",
		eventName, link)
	return s.SendEmail([]string{userEmail}, subject, body)
}
