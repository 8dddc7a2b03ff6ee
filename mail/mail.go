// Package mail sends transactional email. Reset links and subscription
// confirmations go through a Sender so handlers never touch SMTP directly.
package mail

import (
	"log"
	"sync"

	"github.com/glamourcosmetics/storefront-api/config"
	gomail "gopkg.in/mail.v2"
)

const SiteName = "GlamourCosmetics"

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Sender interface {
	Send(m Message) error
}

// New returns an SMTP sender, or a Noop when the settings are incomplete.
func New(cfg config.SMTPConfig) Sender {
	if !cfg.Enabled() {
		log.Println("⚠️ SMTP configuration is incomplete, outbound email is disabled")
		return Noop{}
	}
	return NewSMTP(cfg)
}

type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(cfg config.SMTPConfig) *SMTP {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.SSL = cfg.Port == 465
	return &SMTP{dialer: d, from: cfg.From}
}

func (s *SMTP) Send(m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	if m.HTML != "" {
		msg.AddAlternative("text/html", m.HTML)
	}
	return s.dialer.DialAndSend(msg)
}

// Noop drops every message.
type Noop struct{}

func (Noop) Send(m Message) error {
	log.Printf("✉️ mail disabled, dropping %q to %s", m.Subject, m.To)
	return nil
}

// Recorder keeps messages in memory. Err, when set, is returned from Send
// after the message is recorded.
type Recorder struct {
	mu   sync.Mutex
	sent []Message
	Err  error
}

func (r *Recorder) Send(m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, m)
	return r.Err
}

func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}
