package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/intent"
	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/repository"
)

// WebhookHandler receives fulfillment requests from the conversational agent
// and dispatches them through the intent resolver.  The agent treats any
// non-200 response as a hard failure in the conversation, so this boundary
// always answers 200: handler errors become a degraded fulfillment text.
type WebhookHandler struct {
	Resolver *intent.Resolver
	Shows    *repository.ShowRepo
}

func NewWebhookHandler(r *intent.Resolver, shows *repository.ShowRepo) *WebhookHandler {
	return &WebhookHandler{Resolver: r, Shows: shows}
}

// Handle is the POST /webhook entry point.
func (h *WebhookHandler) Handle(c echo.Context) error {
	var req model.WebhookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, echo.Map{"fulfillmentText": "Webhook error: invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	resp, err := h.Resolver.Resolve(req.IntentName())(ctx, &req)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"fulfillmentText": "Webhook error: " + err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// ReserveByTime is the POST /reserve_tickets/ endpoint.  The agent sends a
// webhook-shaped body whose parameters carry a clock time like "3 PM" and a
// ticket count; the show is matched by its start time and the seats are
// reserved immediately.
func (h *WebhookHandler) ReserveByTime(c echo.Context) error {
	var req model.WebhookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	params := req.Parameters()

	timeStr, _ := params["time"].(string)
	parsed, err := time.Parse("3 PM", timeStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid time format provided."})
	}
	qty := int64(0)
	switch v := params["ticketLeft"].(type) {
	case float64:
		qty = int64(v)
	case int:
		qty = int64(v)
	}
	if qty <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket count required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	show, err := h.Shows.GetByShowTime(ctx, parsed.Format("15:04:05"))
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No show found at the specified time."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if _, err := h.Shows.DecrementTickets(ctx, show.ID, qty); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientSeats):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Not enough tickets available."})
		case errors.Is(err, repository.ErrShowNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No show found at the specified time."})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"fulfillmentText": fmt.Sprintf("Your %d tickets are reserved for the %s show.", qty, timeStr),
	})
}
