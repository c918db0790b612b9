package intent

import (
	"context"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// Handler processes one webhook request for a single intent and produces
// the fulfillment reply.  Returning an error means the webhook boundary
// answers with a degraded "Webhook error" body; handlers that can recover
// locally (validation problems, unknown shows) return a reply instead.
type Handler func(ctx context.Context, req *model.WebhookRequest) (*Response, error)

// Resolver is the immutable intent dispatch table.  It is built once at
// startup and shared by reference; nothing mutates it afterwards.  Unknown
// intent names (including the empty name) resolve to the default handler;
// that is the designed fallback path, not an error.
type Resolver struct {
	handlers map[string]Handler
	fallback Handler
}

// localeIntents are the greeting intents, one per supported language.
var localeIntents = []string{"hindi", "marathi", "bengali", "tamil", "telugu"}

// NewResolver builds the dispatch table over the given quote handler.
func NewResolver(quotes *QuoteHandler) *Resolver {
	r := &Resolver{
		handlers: make(map[string]Handler),
		fallback: func(ctx context.Context, req *model.WebhookRequest) (*Response, error) {
			return LocaleReply(DefaultLocale), nil
		},
	}
	for _, locale := range localeIntents {
		locale := locale
		r.handlers[locale] = func(ctx context.Context, req *model.WebhookRequest) (*Response, error) {
			return LocaleReply(locale), nil
		}
	}
	r.handlers["tickets"] = quotes.ListShows
	r.handlers["ReserveTickets"] = quotes.ReserveTickets
	r.handlers["Text_tickets"] = quotes.TextTickets
	return r
}

// Resolve returns the handler for an intent display name, or the default
// handler when the name is unknown or empty.
func (r *Resolver) Resolve(name string) Handler {
	if h, ok := r.handlers[name]; ok {
		return h
	}
	return r.fallback
}

// Intents lists every intent name present in the dispatch table.
func (r *Resolver) Intents() []string {
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	return out
}
