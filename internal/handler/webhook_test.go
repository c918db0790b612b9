package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-ticketing/internal/intent"
	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/repository"
)

type memShowStore struct {
	shows   map[string]*model.Show
	listErr error
}

func (m *memShowStore) GetByID(_ context.Context, id string) (*model.Show, error) {
	if s, ok := m.shows[id]; ok {
		dup := *s
		return &dup, nil
	}
	return nil, repository.ErrShowNotFound
}

func (m *memShowStore) List(_ context.Context) ([]model.Show, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Show, 0, len(m.shows))
	for _, s := range m.shows {
		out = append(out, *s)
	}
	return out, nil
}

func webhookBody(intentName string, params map[string]any) string {
	req := map[string]any{"queryResult": map[string]any{
		"intent":     map[string]any{"displayName": intentName},
		"parameters": params,
	}}
	b, _ := json.Marshal(req)
	return string(b)
}

func newWebhookHandler(store intent.ShowStore) *WebhookHandler {
	quotes := intent.NewQuoteHandler(store, &stubNotifier{}, intent.DefaultTicketTypeTable(), "https://pay.example.com")
	return NewWebhookHandler(intent.NewResolver(quotes), nil)
}

func quoteStore() *memShowStore {
	return &memShowStore{shows: map[string]*model.Show{
		"show-stories-untold": {
			ID: "show-stories-untold", Title: "Stories Untold",
			Date: "2026-09-12", ShowTime: "15:00:00", Location: "Main Hall",
			Price: "₹150", UnitPrice: 150, TicketsLeft: 40,
		},
	}}
}

func TestWebhookLocaleIntent(t *testing.T) {
	h := newWebhookHandler(quoteStore())

	rec := doJSON(t, h.Handle, http.MethodPost, "/webhook", webhookBody("hindi", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp intent.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.FulfillmentMessages, 2)
	assert.Equal(t, "मैं आपकी किस प्रकार मदद कर सकता हूँ?", resp.FulfillmentMessages[0].Text.Text[0])
}

func TestWebhookUnknownIntentDefaultReply(t *testing.T) {
	h := newWebhookHandler(quoteStore())

	for _, name := range []string{"", "SomethingElse"} {
		rec := doJSON(t, h.Handle, http.MethodPost, "/webhook", webhookBody(name, nil))
		require.Equal(t, http.StatusOK, rec.Code, "intent %q", name)

		var resp intent.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "I didn't understand.", resp.FulfillmentMessages[0].Text.Text[0], "intent %q", name)
	}
}

func TestWebhookReserveTicketsQuote(t *testing.T) {
	h := newWebhookHandler(quoteStore())

	body := webhookBody("ReserveTickets", map[string]any{
		"ticket":      2,
		"email":       "guest@example.com",
		"ticket_type": "Stories Untold",
	})
	rec := doJSON(t, h.Handle, http.MethodPost, "/webhook", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp intent.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.FulfillmentMessages, 2)
	assert.Contains(t, resp.FulfillmentMessages[0].Text.Text[0], "Your total is ₹300")
}

// Handler errors must never escape as non-200: the agent shows the degraded
// text instead of breaking the conversation.
func TestWebhookHandlerErrorDegradesTo200(t *testing.T) {
	h := newWebhookHandler(&memShowStore{listErr: errors.New("db gone")})

	rec := doJSON(t, h.Handle, http.MethodPost, "/webhook", webhookBody("tickets", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["fulfillmentText"], "Webhook error: ")
}

func TestWebhookMalformedBody(t *testing.T) {
	h := newWebhookHandler(quoteStore())

	rec := doJSON(t, h.Handle, http.MethodPost, "/webhook", "{not json")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Webhook error: invalid request body", resp["fulfillmentText"])
}

func newReserveEnv(t *testing.T) (*WebhookHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := newWebhookHandler(quoteStore())
	h.Shows = repository.NewShowRepo(db)
	return h, mock
}

func TestReserveByTimeSuccess(t *testing.T) {
	h, mock := newReserveEnv(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM shows WHERE show_time = ? LIMIT 1`)).
		WithArgs("15:00:00").
		WillReturnRows(showRow("show-1", 10))
	mock.ExpectExec(regexp.QuoteMeta(updateDecrement)).
		WithArgs(int64(2), "show-1", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectTicketLeft)).
		WithArgs("show-1").
		WillReturnRows(sqlmock.NewRows([]string{"tickets_left"}).AddRow(8))

	body := webhookBody("reserve", map[string]any{"time": "3 PM", "ticketLeft": 2})
	rec := doJSON(t, h.ReserveByTime, http.MethodPost, "/reserve_tickets/", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Your 2 tickets are reserved for the 3 PM show.", resp["fulfillmentText"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveByTimeInvalidTime(t *testing.T) {
	h, mock := newReserveEnv(t)

	for _, bad := range []string{"", "25 PM", "soon"} {
		body := webhookBody("reserve", map[string]any{"time": bad, "ticketLeft": 2})
		rec := doJSON(t, h.ReserveByTime, http.MethodPost, "/reserve_tickets/", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "time %q", bad)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveByTimeNoShowAtTime(t *testing.T) {
	h, mock := newReserveEnv(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM shows WHERE show_time = ? LIMIT 1`)).
		WithArgs("21:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	body := webhookBody("reserve", map[string]any{"time": "9 PM", "ticketLeft": 1})
	rec := doJSON(t, h.ReserveByTime, http.MethodPost, "/reserve_tickets/", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveByTimeInsufficient(t *testing.T) {
	h, mock := newReserveEnv(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM shows WHERE show_time = ? LIMIT 1`)).
		WithArgs("15:00:00").
		WillReturnRows(showRow("show-1", 1))
	mock.ExpectExec(regexp.QuoteMeta(updateDecrement)).
		WithArgs(int64(5), "show-1", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(selectShowByID)).
		WithArgs("show-1").
		WillReturnRows(showRow("show-1", 1))

	body := webhookBody("reserve", map[string]any{"time": "3 PM", "ticketLeft": 5})
	rec := doJSON(t, h.ReserveByTime, http.MethodPost, "/reserve_tickets/", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Not enough tickets available.", resp["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
