package email

// Email is a single outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseTLS   bool
}
