package sender

import (
	"context"
	"fmt"
	"net/smtp"
	"time"
)

// SMTPSender sends HTML mail over plain-auth SMTP. Built once at startup and
// shared; it holds no per-send state.
type SMTPSender struct {
	host       string
	port       string
	email      string
	password   string
	senderName string
	timeout    time.Duration
}

func NewSMTPSender(host, port, email, password, senderName string) (*SMTPSender, error) {
	if host == "" {
		return nil, fmt.Errorf("SMTP_SERVER not set")
	}
	if port == "" {
		return nil, fmt.Errorf("SMTP_PORT not set")
	}
	if email == "" {
		return nil, fmt.Errorf("SMTP_EMAIL not set")
	}
	if password == "" {
		return nil, fmt.Errorf("SMTP_PASSWORD not set")
	}

	return &SMTPSender{
		host:       host,
		port:       port,
		email:      email,
		password:   password,
		senderName: senderName,
		timeout:    10 * time.Second,
	}, nil
}

func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) (SendResult, error) {
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.email, s.password, s.host)
	from := fmt.Sprintf("%s <%s>", s.senderName, s.email)

	msg := []byte(
		"From: " + from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	// smtp.SendMail has no context support; run it under a deadline so a
	// stuck relay surfaces as a send failure instead of hanging the request.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.email, []string{to}, msg)
	}()

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	select {
	case err := <-done:
		if err != nil {
			return SendResult{}, fmt.Errorf("smtp send failed: %w", err)
		}
	case <-sendCtx.Done():
		return SendResult{}, fmt.Errorf("smtp send timed out: %w", sendCtx.Err())
	}

	return SendResult{
		MessageID: fmt.Sprintf("smtp-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
