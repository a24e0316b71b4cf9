// Package email sends HTML messages over SMTP. A bulk job opens one
// Session, authenticates once, and pushes every recipient's message
// through it before closing.
package email

import (
	"fmt"

	"gopkg.in/mail.v2"
)

// Session is an open, authenticated SMTP connection.
type Session interface {
	// Send delivers one HTML message to a single recipient.
	Send(to, subject, htmlBody string) error
	Close() error
}

type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
}

func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
	}
}

// Dial opens and authenticates a new SMTP session. A failure here is
// systemic: nothing can be sent to anyone until it succeeds.
func (c *Client) Dial() (Session, error) {
	d := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)
	d.StartTLSPolicy = mail.MandatoryStartTLS

	sc, err := d.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial smtp %s:%d: %w", c.smtpHost, c.smtpPort, err)
	}

	return &session{sc: sc, from: c.from}, nil
}

type session struct {
	sc   mail.SendCloser
	from string
}

func (s *session) Send(to, subject, htmlBody string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := mail.Send(s.sc, m); err != nil {
		return fmt.Errorf("send to %s: %w", to, err)
	}

	return nil
}

func (s *session) Close() error {
	return s.sc.Close()
}
