package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPProvider implements Provider over plain SMTP with optional STARTTLS.
type SMTPProvider struct {
	config *SMTPConfig
	auth   smtp.Auth
}

func NewSMTPProvider(config *SMTPConfig) *SMTPProvider {
	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	return &SMTPProvider{
		config: config,
		auth:   auth,
	}
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is not configured")
	}
	if p.config.Port == 0 {
		return fmt.Errorf("SMTP port is not configured")
	}
	if p.config.From == "" {
		return fmt.Errorf("SMTP from address is not configured")
	}
	return nil
}

func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	message := p.buildMessage(email)
	addr := fmt.Sprintf("%s:%d", p.config.Host, p.config.Port)

	if !p.config.UseTLS {
		return smtp.SendMail(addr, p.auth, p.config.From, email.To, message)
	}

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: p.config.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}
	if p.auth != nil {
		if err := client.Auth(p.auth); err != nil {
			return fmt.Errorf("SMTP auth failed: %w", err)
		}
	}
	if err := client.Mail(p.config.From); err != nil {
		return err
	}
	for _, to := range email.To {
		if err := client.Rcpt(to); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func (p *SMTPProvider) buildMessage(email *Email) []byte {
	from := p.config.From
	if p.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", p.config.FromName, p.config.From)
	}

	contentType := "text/plain; charset=UTF-8"
	if email.HTML {
		contentType = "text/html; charset=UTF-8"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	fmt.Fprintf(&b, "\r\n%s\r\n", email.Body)
	return []byte(b.String())
}
