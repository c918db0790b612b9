// Package repository contains the data access layer.  This file holds the
// ShowRepo, which owns the seats-remaining counter.  The counter only moves
// through DecrementTickets, whose conditional UPDATE is what linearizes
// concurrent bookings for the same show: two requests whose combined seat
// counts exceed availability can never both succeed.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{db: db} }

// DB exposes the underlying sql.DB for callers that need transactions
// spanning multiple repositories.
func (r *ShowRepo) DB() *sql.DB { return r.db }

const showColumns = `id, image, title, date, show_time, location, price, unit_price, tickets_left`

func scanShow(row *sql.Row) (*model.Show, error) {
	var s model.Show
	err := row.Scan(&s.ID, &s.Image, &s.Title, &s.Date, &s.ShowTime, &s.Location, &s.Price, &s.UnitPrice, &s.TicketsLeft)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a show by its opaque identifier.  It returns
// ErrShowNotFound when there is no matching row.  This is a pure read and
// never mutates the counter.
func (r *ShowRepo) GetByID(ctx context.Context, id string) (*model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows WHERE id = ?`
	return scanShow(r.db.QueryRowContext(ctx, q, id))
}

// GetByShowTime retrieves the show starting at the given clock time
// ("15:04:05" format, as stored).  Used by the time-based reservation
// endpoint where the agent supplies a time instead of an identifier.
func (r *ShowRepo) GetByShowTime(ctx context.Context, showTime string) (*model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows WHERE show_time = ? LIMIT 1`
	return scanShow(r.db.QueryRowContext(ctx, q, showTime))
}

// List returns all shows ordered by date and time.  An empty slice and nil
// error means the table is empty.
func (r *ShowRepo) List(ctx context.Context) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows ORDER BY date, show_time`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Show
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.Image, &s.Title, &s.Date, &s.ShowTime, &s.Location, &s.Price, &s.UnitPrice, &s.TicketsLeft); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DecrementTickets atomically subtracts n seats from the show's counter and
// returns the new tickets-left value.  The UPDATE only matches while the
// counter can absorb the decrement, so the counter can never go negative no
// matter how requests interleave.  When the UPDATE matches nothing the show
// is re-read once to classify the failure: ErrShowNotFound when the row is
// gone, ErrInsufficientSeats when availability is short, ErrConflict when a
// concurrent writer raced the re-read.
func (r *ShowRepo) DecrementTickets(ctx context.Context, id string, n int64) (int64, error) {
	if n <= 0 {
		return 0, ErrConflict
	}
	const upd = `UPDATE shows SET tickets_left = tickets_left - ? WHERE id = ? AND tickets_left >= ?`
	res, err := r.db.ExecContext(ctx, upd, n, id, n)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		s, err := r.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if s.TicketsLeft < n {
			return 0, ErrInsufficientSeats
		}
		return 0, ErrConflict
	}
	const sel = `SELECT tickets_left FROM shows WHERE id = ?`
	var left int64
	if err := r.db.QueryRowContext(ctx, sel, id).Scan(&left); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrShowNotFound
		}
		return 0, err
	}
	return left, nil
}

// Create inserts a new show.  The caller supplies the opaque identifier;
// seeding is the only path that creates shows.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (id, image, title, date, show_time, location, price, unit_price, tickets_left)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		s.ID, s.Image, s.Title, s.Date, s.ShowTime, s.Location, s.Price, s.UnitPrice, s.TicketsLeft)
	return err
}

// Update replaces a show's descriptive attributes and counter.  Returns
// ErrShowNotFound when the identifier does not exist.  Reserved for the
// staff management surface; booking paths never call it.
func (r *ShowRepo) Update(ctx context.Context, s *model.Show) error {
	const q = `UPDATE shows SET image = ?, title = ?, date = ?, show_time = ?, location = ?,
	           price = ?, unit_price = ?, tickets_left = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		s.Image, s.Title, s.Date, s.ShowTime, s.Location, s.Price, s.UnitPrice, s.TicketsLeft, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
		// row exists with identical values; treat as success
	}
	return nil
}
