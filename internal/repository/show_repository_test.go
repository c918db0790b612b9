package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectShowByID   = `SELECT id, image, title, date, show_time, location, price, unit_price, tickets_left FROM shows WHERE id = ?`
	updateDecrement  = `UPDATE shows SET tickets_left = tickets_left - ? WHERE id = ? AND tickets_left >= ?`
	selectTicketLeft = `SELECT tickets_left FROM shows WHERE id = ?`
)

func showRow(id string, left int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "image", "title", "date", "show_time", "location", "price", "unit_price", "tickets_left",
	}).AddRow(id, "img.png", "Stories Untold", "2026-09-12", "15:00:00", "Main Hall", "₹150", 150, left)
}

func newShowRepo(t *testing.T) (*ShowRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewShowRepo(db), mock
}

func TestShowRepoGetByID(t *testing.T) {
	repo, mock := newShowRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectShowByID)).
		WithArgs("show-1").
		WillReturnRows(showRow("show-1", 40))

	s, err := repo.GetByID(context.Background(), "show-1")
	require.NoError(t, err)
	assert.Equal(t, "show-1", s.ID)
	assert.Equal(t, int64(150), s.UnitPrice)
	assert.Equal(t, int64(40), s.TicketsLeft)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Reads must not move the counter: two lookups with no write in between see
// the same seats-remaining value.
func TestShowRepoGetByIDIdempotent(t *testing.T) {
	repo, mock := newShowRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectShowByID)).WithArgs("show-1").WillReturnRows(showRow("show-1", 40))
	mock.ExpectQuery(regexp.QuoteMeta(selectShowByID)).WithArgs("show-1").WillReturnRows(showRow("show-1", 40))

	first, err := repo.GetByID(context.Background(), "show-1")
	require.NoError(t, err)
	second, err := repo.GetByID(context.Background(), "show-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newShowRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectShowByID)).
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrShowNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementTicketsSuccess(t *testing.T) {
	repo, mock := newShowRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(updateDecrement)).
		WithArgs(3, "show-1", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectTicketLeft)).
		WithArgs("show-1").
		WillReturnRows(sqlmock.NewRows([]string{"tickets_left"}).AddRow(2))

	left, err := repo.DecrementTickets(context.Background(), "show-1", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), left)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementTicketsInsufficient(t *testing.T) {
	repo, mock := newShowRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(updateDecrement)).
		WithArgs(3, "show-1", 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(selectShowByID)).
		WithArgs("show-1").
		WillReturnRows(showRow("show-1", 2))

	_, err := repo.DecrementTickets(context.Background(), "show-1", 3)
	assert.ErrorIs(t, err, ErrInsufficientSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementTicketsShowGone(t *testing.T) {
	repo, mock := newShowRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(updateDecrement)).
		WithArgs(1, "gone", 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(selectShowByID)).
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.DecrementTickets(context.Background(), "gone", 1)
	assert.ErrorIs(t, err, ErrShowNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A matched-nothing UPDATE whose re-read shows enough seats means a
// concurrent writer moved the counter between the two statements.
func TestDecrementTicketsRacedConflict(t *testing.T) {
	repo, mock := newShowRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(updateDecrement)).
		WithArgs(3, "show-1", 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(selectShowByID)).
		WithArgs("show-1").
		WillReturnRows(showRow("show-1", 5))

	_, err := repo.DecrementTickets(context.Background(), "show-1", 3)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementTicketsRejectsNonPositive(t *testing.T) {
	repo, mock := newShowRepo(t)

	for _, n := range []int64{0, -1} {
		_, err := repo.DecrementTickets(context.Background(), "show-1", n)
		assert.ErrorIs(t, err, ErrConflict, "n=%d", n)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two bookings of 3 against 5 seats: the first lands, the second must fail
// with an insufficient-seats error and the counter never goes negative.
func TestDecrementTicketsSequentialOversell(t *testing.T) {
	repo, mock := newShowRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(updateDecrement)).
		WithArgs(3, "show-1", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectTicketLeft)).
		WithArgs("show-1").
		WillReturnRows(sqlmock.NewRows([]string{"tickets_left"}).AddRow(2))

	mock.ExpectExec(regexp.QuoteMeta(updateDecrement)).
		WithArgs(3, "show-1", 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(selectShowByID)).
		WithArgs("show-1").
		WillReturnRows(showRow("show-1", 2))

	left, err := repo.DecrementTickets(context.Background(), "show-1", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), left)

	_, err = repo.DecrementTickets(context.Background(), "show-1", 3)
	assert.ErrorIs(t, err, ErrInsufficientSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
