package contact

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Sender forwards a message to the site owner.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTPSender delivers messages through an authenticated SMTP relay.
type SMTPSender struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// sendMail is smtp.SendMail unless replaced in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender returns a sender for the given relay. Mail goes to user
// when to is empty.
func NewSMTPSender(host, port, user, pass, to string) *SMTPSender {
	if to == "" {
		to = user
	}
	return &SMTPSender{Host: host, Port: port, User: user, Pass: pass, To: to, sendMail: smtp.SendMail}
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	if err := s.sendMail(s.Host+":"+s.Port, auth, s.User, []string{s.To}, s.compose(m)); err != nil {
		return fmt.Errorf("sending message %s: %w", m.ID, err)
	}

	log.Printf("contact: sent message id=%s from=%s", m.ID, m.Email)
	return nil
}

func (s *SMTPSender) compose(m Message) []byte {
	body := fmt.Sprintf(`
New message from the portfolio contact form:

From: %s
Received: %s
Message:
%s

---
Message ID %s
`, headerSafe(m.Email), m.CreatedAt.UTC().Format("Jan 2, 2006 15:04 MST"), m.Body, m.ID)

	var b strings.Builder
	b.WriteString("To: " + s.To + "\r\n")
	b.WriteString("Subject: Portfolio Contact: " + headerSafe(m.Email) + "\r\n")
	b.WriteString("From: " + s.User + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(m.Email) + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

// headerSafe strips line breaks so user input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
