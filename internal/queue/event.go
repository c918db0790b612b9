// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into emails.
package queue

// TicketEmailQueue is the durable queue carrying ticket email events.
const TicketEmailQueue = "ticket.email"

// Event kinds.  A quote event is sent when the agent produces a price
// quote; a confirmation event follows a committed payment.
const (
	KindQuote        = "quote"
	KindConfirmation = "confirmation"
)

// TicketEmailEvent is published after a reply has already been determined.
// It carries everything the mail composer needs so the consumer never
// queries the primary database.
type TicketEmailEvent struct {
	Kind        string `json:"kind"`
	PaymentID   string `json:"payment_id,omitempty"`
	ShowID      string `json:"show_id"`
	ShowTitle   string `json:"show_title"`
	ShowDate    string `json:"show_date"`
	ShowTime    string `json:"show_time"`
	Location    string `json:"location"`
	Email       string `json:"email"`
	Quantity    int    `json:"quantity"`
	Amount      int64  `json:"amount"`
	RequestedAt string `json:"requested_at"`
}
