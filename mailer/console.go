package mailer

import "log"

// ConsoleSender logs messages instead of delivering them. Used when no
// Sendgrid API key is configured.
type ConsoleSender struct{}

func (ConsoleSender) Send(msg Message) error {
	log.Printf("--- Email (console) ---\nTo: %s <%s>\nSubject: %s\nAttachments: %d\n", msg.ToName, msg.ToEmail, msg.Subject, len(msg.Attachments))
	return nil
}
