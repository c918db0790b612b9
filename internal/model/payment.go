package model

import "time"

// PaymentRecord is one completed booking transaction in the payment ledger.
// SeatCount must equal len(SelectedSeats) and Amount must equal
// SeatCount × the show's unit price at booking time; both invariants are
// enforced before the record is written.  Records are never updated or
// deleted after a successful booking (the compensating delete on a failed
// inventory decrement is the single exception).
type PaymentRecord struct {
	ID            string    `json:"id"`
	ShowID        string    `json:"eventId"`
	SelectedSeats []int     `json:"selectedSeats"`
	SeatCount     int       `json:"seatCount"`
	Email         string    `json:"email"`
	Amount        int64     `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
}
