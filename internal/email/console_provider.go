package email

import (
	"markbook_backend/internal/logger"
)

// ConsoleProvider logs outbound email instead of sending it. Used in
// development and tests.
type ConsoleProvider struct{}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

func (p *ConsoleProvider) Validate() error { return nil }

func (p *ConsoleProvider) Send(email *Email) error {
	logger.Info("email (console provider)",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}
