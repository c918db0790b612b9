package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

func newPaymentRepo(t *testing.T) (*PaymentRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPaymentRepo(db), mock
}

func TestPaymentCreateNormalizesAndAssignsID(t *testing.T) {
	repo, mock := newPaymentRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payments`)).
		WithArgs(sqlmock.AnyArg(), "show-1", `[1,2,3]`, 3, "guest@example.com", int64(450), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	p := &model.PaymentRecord{
		ShowID:        "show-1",
		SelectedSeats: []int{1, 2, 3},
		SeatCount:     3,
		Email:         "  Guest@Example.COM ",
		Amount:        450,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "guest@example.com", p.Email)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentExistsForEmailAndShow(t *testing.T) {
	repo, mock := newPaymentRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM payments WHERE email = ? AND show_id = ?`)).
		WithArgs("guest@example.com", "show-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsForEmailAndShow(context.Background(), "Guest@Example.com", "show-1")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM payments WHERE email = ? AND show_id = ?`)).
		WithArgs("other@example.com", "show-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	exists, err = repo.ExistsForEmailAndShow(context.Background(), "other@example.com", "show-1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentDelete(t *testing.T) {
	repo, mock := newPaymentRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM payments WHERE id = ?`)).
		WithArgs("pay-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "pay-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
