package mailer

import (
	"log"
	"sync"
)

// Attachment is a file attached to an outgoing message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a single outgoing email.
type Message struct {
	ToName      string
	ToEmail     string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Sender delivers a single message. Implementations: SendgridSender for
// production, ConsoleSender for development and tests.
type Sender interface {
	Send(msg Message) error
}

// Dispatcher decouples email delivery from the request path: messages are
// handed to a buffered channel and delivered by a background worker, so a
// slow or failing mail provider never blocks or rolls back the operation
// that produced the message.
type Dispatcher struct {
	sender Sender
	queue  chan Message
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher with the given queue depth.
func NewDispatcher(sender Sender, buffer int) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		queue:  make(chan Message, buffer),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for msg := range d.queue {
			if err := d.sender.Send(msg); err != nil {
				log.Printf("Error sending email to %s: %v", msg.ToEmail, err)
			}
		}
	}()
}

// Stop drains the queue and waits for in-flight deliveries.
func (d *Dispatcher) Stop() {
	close(d.queue)
	d.wg.Wait()
}

// Enqueue hands a message to the delivery worker without blocking. When the
// queue is full the message is dropped and logged; email here is best-effort
// notification, never part of a transaction.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		log.Printf("Email queue full, dropping message to %s (%s)", msg.ToEmail, msg.Subject)
	}
}
