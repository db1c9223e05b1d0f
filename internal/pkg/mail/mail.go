package mail

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"
)

// Config holds SMTP settings for notification mail.
type Config struct {
	Enable bool   `yaml:"enable"`
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Pass   string `yaml:"pass"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`
}

// Message is a single email to send.
type Message struct {
	To      []string
	Subject string
	Text    string
}

// Sender sends notification emails via SMTP.
type Sender struct {
	cfg Config
}

func New(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// Enabled reports whether sending is configured.
func (s *Sender) Enabled() bool {
	return s.cfg.Enable && s.cfg.Host != ""
}

// DefaultRecipients returns the configured notification recipients.
func (s *Sender) DefaultRecipients() []string {
	if strings.TrimSpace(s.cfg.To) == "" {
		return nil
	}
	parts := strings.Split(s.cfg.To, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Send dispatches an email. A disabled sender is a silent no-op.
func (s *Sender) Send(msg Message) error {
	if !s.Enabled() {
		return nil
	}
	if len(msg.To) == 0 {
		return nil
	}

	port := s.cfg.Port
	if port == 0 {
		port = 587
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, port)

	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}

	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	body.WriteString("From: " + from + "\r\n")
	body.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	body.WriteString("Subject: " + msg.Subject + "\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.Text)
	body.WriteString("\r\n")

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, from, msg.To, body.Bytes())
}
