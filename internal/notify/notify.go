// Package notify turns booking events into messages for guests and hosts.
package notify

import (
	"context"
	"fmt"

	"github.com/Domenick1991/saraye/internal/kafka"
	"github.com/sirupsen/logrus"
)

type Audience string

const (
	AudienceGuest Audience = "guest"
	AudienceHost  Audience = "host"
)

type Message struct {
	To      Audience
	Subject string
	Body    string
}

// Messages returns what each party is told about the event. Unknown event
// types produce nothing.
func Messages(event kafka.BookingEvent) []Message {
	ref := fmt.Sprintf("booking %s for property %s (%s to %s)",
		event.BookingID, event.PropertyID, event.CheckIn.Format("2006-01-02"), event.CheckOut.Format("2006-01-02"))

	switch event.Type {
	case kafka.EventBookingCreated:
		return []Message{
			{To: AudienceGuest, Subject: "Booking request sent", Body: "Your request for " + ref + " is waiting for the host."},
			{To: AudienceHost, Subject: "New booking request", Body: "A guest requested " + ref + "."},
		}
	case kafka.EventBookingApproved:
		return []Message{{To: AudienceGuest, Subject: "Booking approved",
			Body: fmt.Sprintf("The host approved %s. Pay %s to confirm.", ref, formatCents(event.TotalCents))}}
	case kafka.EventBookingDeclined:
		return []Message{{To: AudienceGuest, Subject: "Booking declined", Body: "The host declined " + ref + "."}}
	case kafka.EventBookingCancelled:
		return []Message{
			{To: AudienceGuest, Subject: "Booking cancelled", Body: ref + " was cancelled."},
			{To: AudienceHost, Subject: "Booking cancelled", Body: ref + " was cancelled."},
		}
	case kafka.EventBookingConfirmed:
		return []Message{
			{To: AudienceGuest, Subject: "Booking confirmed", Body: fmt.Sprintf("Payment of %s received, %s is confirmed.", formatCents(event.TotalCents), ref)},
			{To: AudienceHost, Subject: "Booking confirmed", Body: ref + " is paid and confirmed."},
		}
	case kafka.EventBookingCompleted:
		return []Message{{To: AudienceGuest, Subject: "How was your stay?", Body: "Your stay for " + ref + " is complete. You can now leave a review."}}
	default:
		return nil
	}
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// Sender delivers notifications. Delivery is a structured log line; a mail or
// push transport would slot in here.
type Sender struct {
	log logrus.FieldLogger
}

func NewSender(log logrus.FieldLogger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	messages := Messages(event)
	if len(messages) == 0 {
		s.log.WithField("type", event.Type).Debug("no notification for event")
		return nil
	}
	for _, m := range messages {
		s.log.WithFields(logrus.Fields{
			"booking_id": event.BookingID,
			"guest_id":   event.GuestID,
			"to":         m.To,
			"subject":    m.Subject,
		}).Info(m.Body)
	}
	return nil
}
