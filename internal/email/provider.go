package email

// Provider sends outbound email. Callers treat sends as best-effort; a
// failed welcome email never fails registration.
type Provider interface {
	Send(email *Email) error
	Validate() error
}
