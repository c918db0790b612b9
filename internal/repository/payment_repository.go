package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// PaymentRepo persists the payment ledger.  One row per completed booking;
// the selected seat identifiers are stored as a JSON array in a text column.
// Rows are immutable after insert except for the compensating Delete used
// when the inventory decrement that should follow an insert fails.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo constructs a PaymentRepo with the given DB handle.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Create inserts a payment record.  A fresh UUID is assigned to p.ID and the
// creation timestamp is set on the struct.  The contact email is normalized
// to lowercase before the write so duplicate detection stays consistent.
func (r *PaymentRepo) Create(ctx context.Context, p *model.PaymentRecord) error {
	seats, err := json.Marshal(p.SelectedSeats)
	if err != nil {
		return err
	}
	p.ID = uuid.NewString()
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.CreatedAt = time.Now().UTC()
	const q = `INSERT INTO payments (id, show_id, selected_seats, seat_count, email, amount, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q,
		p.ID, p.ShowID, string(seats), p.SeatCount, p.Email, p.Amount, p.CreatedAt)
	return err
}

// ExistsForEmailAndShow reports whether the contact already has a payment
// recorded for the show.  The lookup uses the lowercased email, matching the
// normalization applied on insert.
func (r *PaymentRepo) ExistsForEmailAndShow(ctx context.Context, email, showID string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT 1 FROM payments WHERE email = ? AND show_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, email, showID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes a payment record by ID.  This is the compensating step for
// the known gap between the ledger insert and the inventory decrement: when
// the decrement fails the freshly inserted row is removed so no orphaned
// payment survives.
func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM payments WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
