package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

func testResolver() *Resolver {
	quotes := NewQuoteHandler(testStore(), &fakeNotifier{}, DefaultTicketTypeTable(), "link")
	return NewResolver(quotes)
}

func TestResolverDispatchTableComplete(t *testing.T) {
	r := testResolver()
	want := []string{
		"hindi", "marathi", "bengali", "tamil", "telugu",
		"tickets", "ReserveTickets", "Text_tickets",
	}
	assert.ElementsMatch(t, want, r.Intents())
}

func TestResolverLocaleIntents(t *testing.T) {
	r := testResolver()
	for _, locale := range localeIntents {
		h := r.Resolve(locale)
		resp, err := h(context.Background(), &model.WebhookRequest{})
		require.NoError(t, err, locale)
		assert.Equal(t, LocaleReply(locale), resp, locale)
	}
}

func TestResolverUnknownAndEmptyFallBack(t *testing.T) {
	r := testResolver()
	def := LocaleReply(DefaultLocale)
	for _, name := range []string{"", "DoesNotExist", "HINDI", "reservetickets"} {
		resp, err := r.Resolve(name)(context.Background(), &model.WebhookRequest{})
		require.NoError(t, err, "intent %q", name)
		assert.Equal(t, def, resp, "intent %q", name)
	}
}

func TestResolverQuoteIntentWired(t *testing.T) {
	r := testResolver()
	resp, err := r.Resolve("ReserveTickets")(context.Background(),
		reserveRequest(float64(2), "a@b.com", "Stories Untold"))
	require.NoError(t, err)
	assert.Contains(t, resp.FulfillmentMessages[0].Text.Text[0], "Your total is ₹300")
}
