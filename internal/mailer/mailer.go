// Package mailer delivers transactional mail such as organization invitations.
package mailer

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Message is a single outgoing mail.
type Message struct {
	ToName    string
	ToEmail   string
	Subject   string
	PlainText string
	HTML      string
}

// Mailer sends messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Log writes messages to the application log instead of sending them.
// It is used when mail delivery is disabled.
type Log struct{}

// Send logs msg.
func (Log) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("to", msg.ToEmail).
		Str("subject", msg.Subject).
		Str("body", msg.PlainText).
		Msg("mail delivery disabled, message logged")

	return nil
}

// Recorder keeps sent messages in memory.
type Recorder struct {
	mu   sync.Mutex
	sent []Message
	Err  error // returned by Send when set
}

// Send records msg.
func (r *Recorder) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}

	r.sent = append(r.sent, msg)

	return nil
}

// Sent returns a copy of the recorded messages.
func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Message, len(r.sent))
	copy(out, r.sent)

	return out
}
