// Package notify is the fire-and-forget notification sink. Events are
// queued on a buffered channel and drained by a single worker; a full
// queue drops the event rather than slowing a request down.
package notify

import "log"

type Event struct {
	Type    string
	To      string
	Subject string
	Body    string
}

// Sender delivers a single notification. The default sender only logs;
// a real mail provider slots in behind this interface.
type Sender interface {
	Send(to, subject, body string) error
}

type LogSender struct{}

func (LogSender) Send(to, subject, body string) error {
	log.Printf("notify: sending email to %s with subject %q", to, subject)
	return nil
}

type Dispatcher struct {
	sender Sender
	queue  chan Event
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sender.Send(ev.To, ev.Subject, ev.Body); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("notify queue full, dropping event")
	}
}
