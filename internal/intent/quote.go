package intent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/queue"
	"github.com/iliyamo/venue-ticketing/internal/repository"
)

// ShowStore is the read surface the quote engine needs from the inventory
// store.  Quotes never mutate inventory; the commit happens later in the
// payment-confirmation endpoint.
type ShowStore interface {
	GetByID(ctx context.Context, id string) (*model.Show, error)
	List(ctx context.Context) ([]model.Show, error)
}

// Notifier hands a ticket email event to the deferred delivery pipeline.
// Implementations must not block on broker round trips; a returned error is
// logged and never affects the reply.
type Notifier interface {
	Publish(ctx context.Context, ev queue.TicketEmailEvent) error
}

// TicketTypeTable maps the agent's ticket-type labels onto show
// identifiers.  Labels not in the table resolve to Default.
type TicketTypeTable struct {
	Shows   map[string]string
	Default string
}

// Resolve returns the show identifier for a label, falling back to the
// default show for unknown or absent labels.
func (t TicketTypeTable) Resolve(label string) string {
	if id, ok := t.Shows[strings.TrimSpace(label)]; ok {
		return id
	}
	return t.Default
}

// DefaultTicketTypeTable returns the venue's fixed label table.  The
// identifiers match the seeded show catalog.
func DefaultTicketTypeTable() TicketTypeTable {
	return TicketTypeTable{
		Shows: map[string]string{
			"Stories Untold": "show-stories-untold",
			"Echoes of Time": "show-echoes-of-time",
			"City of Lights": "show-city-of-lights",
		},
		Default: "show-stories-untold",
	}
}

var validate = validator.New()

// QuoteHandler implements the reservation-quote intents.  It reads the show,
// computes the total and schedules the quote email; it performs no writes.
type QuoteHandler struct {
	shows       ShowStore
	notify      Notifier
	table       TicketTypeTable
	paymentLink string
}

// NewQuoteHandler constructs a QuoteHandler.  paymentLink is the web
// checkout URL included in quote replies.
func NewQuoteHandler(shows ShowStore, notify Notifier, table TicketTypeTable, paymentLink string) *QuoteHandler {
	if shows == nil || notify == nil {
		panic("nil dependency passed to NewQuoteHandler")
	}
	return &QuoteHandler{shows: shows, notify: notify, table: table, paymentLink: paymentLink}
}

// ReserveTickets handles the quote intent carrying a ticket count, contact
// email and ticket-type label.  Parameter problems produce a corrective
// reply rather than an error so the conversation keeps moving; an unknown
// show degrades to the default reply for the same reason.
func (h *QuoteHandler) ReserveTickets(ctx context.Context, req *model.WebhookRequest) (*Response, error) {
	params := req.Parameters()

	qty := intParam(params, "ticket")
	if qty <= 0 {
		return TextResponse("Please tell me how many tickets you'd like."), nil
	}
	email := strings.ToLower(strings.TrimSpace(stringParam(params, "email")))
	if err := validate.Var(email, "required,email"); err != nil {
		return TextResponse("That email address doesn't look right, could you share it again?"), nil
	}

	showID := h.table.Resolve(stringParam(params, "ticket_type"))
	show, err := h.shows.GetByID(ctx, showID)
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return LocaleReply(DefaultLocale), nil
		}
		return nil, err
	}

	total := int64(qty) * show.UnitPrice
	h.schedule(queue.TicketEmailEvent{
		Kind:        queue.KindQuote,
		ShowID:      show.ID,
		ShowTitle:   show.Title,
		ShowDate:    show.Date,
		ShowTime:    show.ShowTime,
		Location:    show.Location,
		Email:       email,
		Quantity:    qty,
		Amount:      total,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	})

	text := fmt.Sprintf("Your total is ₹%d, the tickets will be mailed to you @%s.\nProceed for payment:\n%s",
		total, email, h.paymentLink)
	return ChipsResponse(text, "Pay online", "Pay at the venue"), nil
}

// TextTickets handles the short quote intent that carries only a count.
func (h *QuoteHandler) TextTickets(ctx context.Context, req *model.WebhookRequest) (*Response, error) {
	qty := intParam(req.Parameters(), "Ticket")
	if qty <= 0 {
		return TextResponse("Please tell me how many tickets you'd like."), nil
	}
	show, err := h.shows.GetByID(ctx, h.table.Default)
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return LocaleReply(DefaultLocale), nil
		}
		return nil, err
	}
	total := int64(qty) * show.UnitPrice
	return TextResponse("Your total is ₹%d, proceed for payment:\n%s.", total, h.paymentLink), nil
}

// ListShows handles the tickets intent: every show becomes a rich list item
// whose follow-up event carries the ticket-type label back to the agent.
func (h *QuoteHandler) ListShows(ctx context.Context, req *model.WebhookRequest) (*Response, error) {
	shows, err := h.shows.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(shows) == 0 {
		return TextResponse("There are no shows scheduled right now."), nil
	}
	blocks := make([]RichBlock, 0, len(shows)*2-1)
	for i, s := range shows {
		if i > 0 {
			blocks = append(blocks, RichBlock{Type: "divider"})
		}
		blocks = append(blocks, RichBlock{
			Type:     "list",
			Title:    s.Title,
			Subtitle: fmt.Sprintf("%s · %s · %s", s.Date, s.ShowTime, s.Price),
			Event: &FollowupEvent{
				Name:       "select_ticket_type",
				Parameters: map[string]string{"ticket_type": s.Title},
			},
		})
	}
	return &Response{
		FulfillmentMessages: []Message{
			{Text: &Text{Text: []string{"Here's what's on at the venue:"}}},
			{Payload: &RichPayload{RichContent: [][]RichBlock{blocks}}},
		},
	}, nil
}

// schedule hands the event to the notifier and logs a failed handoff.  The
// reply has already been determined by the time this runs; a notification
// problem never changes it.
func (h *QuoteHandler) schedule(ev queue.TicketEmailEvent) {
	if err := h.notify.Publish(context.Background(), ev); err != nil {
		log.Printf("quote: ticket email not scheduled for %s: %v", ev.Email, err)
	}
}

// intParam reads an integer-ish parameter.  The agent sends numbers as
// float64 and occasionally as numeric strings; anything unreadable is 0.
func intParam(params map[string]any, key string) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// stringParam reads a string parameter, empty when absent or non-string.
func stringParam(params map[string]any, key string) string {
	if s, ok := params[key].(string); ok {
		return s
	}
	return ""
}
