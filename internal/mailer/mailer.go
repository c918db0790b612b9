// Package mailer composes and sends ticket emails over SMTP.
package mailer

import (
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/iliyamo/venue-ticketing/internal/queue"
)

// Config holds the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Mailer sends ticket emails for consumed queue events.
type Mailer struct {
	cfg Config
}

// New returns a Mailer for the given SMTP settings.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendTicketEmail composes and delivers the email for one event.  The
// subject and body depend on the event kind: quotes get a summary with the
// amount due, confirmations get a booking receipt.
func (m *Mailer) SendTicketEmail(ev queue.TicketEmailEvent) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(ev.Email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	subject, body := composeTicketEmail(ev)
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

func composeTicketEmail(ev queue.TicketEmailEvent) (subject, body string) {
	var b strings.Builder
	switch ev.Kind {
	case queue.KindConfirmation:
		subject = fmt.Sprintf("Booking confirmed: %s", ev.ShowTitle)
		fmt.Fprintf(&b, "Your booking is confirmed!\n\n")
		fmt.Fprintf(&b, "Show:     %s\n", ev.ShowTitle)
		fmt.Fprintf(&b, "Date:     %s at %s\n", ev.ShowDate, ev.ShowTime)
		fmt.Fprintf(&b, "Venue:    %s\n", ev.Location)
		fmt.Fprintf(&b, "Tickets:  %d\n", ev.Quantity)
		fmt.Fprintf(&b, "Paid:     ₹%d\n", ev.Amount)
		if ev.PaymentID != "" {
			fmt.Fprintf(&b, "Booking reference: %s\n", ev.PaymentID)
		}
		fmt.Fprintf(&b, "\nSee you at the show!\n")
	default:
		subject = fmt.Sprintf("Your ticket quote for %s", ev.ShowTitle)
		fmt.Fprintf(&b, "Here is your quote:\n\n")
		fmt.Fprintf(&b, "Show:     %s\n", ev.ShowTitle)
		fmt.Fprintf(&b, "Date:     %s at %s\n", ev.ShowDate, ev.ShowTime)
		fmt.Fprintf(&b, "Venue:    %s\n", ev.Location)
		fmt.Fprintf(&b, "Tickets:  %d\n", ev.Quantity)
		fmt.Fprintf(&b, "Total:    ₹%d\n", ev.Amount)
		fmt.Fprintf(&b, "\nComplete the payment to confirm your seats.\n")
	}
	return subject, b.String()
}
