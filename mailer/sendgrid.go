package mailer

import (
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridSender delivers messages through the Sendgrid v3 API.
type SendgridSender struct {
	apiKey    string
	fromName  string
	fromEmail string
}

// NewSendgridSender creates a Sendgrid-backed sender.
func NewSendgridSender(apiKey, fromName, fromEmail string) *SendgridSender {
	return &SendgridSender{
		apiKey:    apiKey,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SendgridSender) Send(msg Message) error {
	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(s.fromName, s.fromEmail))
	m.Subject = msg.Subject

	p := sgmail.NewPersonalization()
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))
	m.AddPersonalizations(p)

	m.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))

	for _, att := range msg.Attachments {
		a := sgmail.NewAttachment()
		a.SetFilename(att.Filename)
		a.SetType(att.ContentType)
		a.SetContent(base64.StdEncoding.EncodeToString(att.Data))
		a.SetDisposition("attachment")
		m.AddAttachment(a)
	}

	resp, err := sendgrid.NewSendClient(s.apiKey).Send(m)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
