package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/intent"
	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/queue"
	"github.com/iliyamo/venue-ticketing/internal/repository"
)

// BookingHandler serves the payment confirmation and inventory endpoints.
// Payment confirmation is the one place inventory is decremented alongside a
// ledger write; the ordering of its checks is deliberate and every check runs
// before the first mutation.
type BookingHandler struct {
	Shows    *repository.ShowRepo
	Payments *repository.PaymentRepo
	Notify   intent.Notifier
	validate *validator.Validate
}

func NewBookingHandler(shows *repository.ShowRepo, payments *repository.PaymentRepo, notify intent.Notifier) *BookingHandler {
	return &BookingHandler{
		Shows:    shows,
		Payments: payments,
		Notify:   notify,
		validate: validator.New(),
	}
}

// ----- DTOs -----

type paymentReq struct {
	EventID       string `json:"eventId" validate:"required"`
	SelectedSeats []int  `json:"selectedSeats" validate:"required,min=1"`
	SeatCount     int    `json:"seatCount" validate:"required,gt=0"`
	Email         string `json:"email" validate:"required,email"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
}

type updateReq struct {
	EventID       string `json:"eventId" validate:"required"`
	TicketsBought int64  `json:"ticketsBought" validate:"required,gt=0"`
}

// PaymentConfirm is POST /ticket_booking/payment.  Check order: payload,
// show exists, amount matches, no duplicate for (email, show), enough seats.
// Only then the payment row is written and the counter decremented; a failed
// decrement removes the just-written row so the ledger never carries a
// payment without its seats.
func (h *BookingHandler) PaymentConfirm(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment payload"})
	}
	if len(req.SelectedSeats) != req.SeatCount {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seatCount does not match selectedSeats"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	show, err := h.Shows.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if want := int64(req.SeatCount) * show.UnitPrice; req.Amount != want {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount does not match ticket price"})
	}

	exists, err := h.Payments.ExistsForEmailAndShow(ctx, req.Email, show.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": repository.ErrDuplicatePayment.Error()})
	}

	if int64(req.SeatCount) > show.TicketsLeft {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "not enough tickets available"})
	}

	record := &model.PaymentRecord{
		ShowID:        show.ID,
		SelectedSeats: req.SelectedSeats,
		SeatCount:     req.SeatCount,
		Email:         req.Email,
		Amount:        req.Amount,
	}
	if err := h.Payments.Create(ctx, record); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save payment"})
	}

	left, err := h.Shows.DecrementTickets(ctx, show.ID, int64(req.SeatCount))
	if err != nil {
		// Undo the ledger insert; the booking did not happen.
		_ = h.Payments.Delete(ctx, record.ID)
		switch {
		case errors.Is(err, repository.ErrShowNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		case errors.Is(err, repository.ErrInsufficientSeats):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "not enough tickets available"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation conflict, please retry"})
		}
	}

	emailStatus := "queued"
	if err := h.Notify.Publish(ctx, queue.TicketEmailEvent{
		Kind:        queue.KindConfirmation,
		PaymentID:   record.ID,
		ShowID:      show.ID,
		ShowTitle:   show.Title,
		ShowDate:    show.Date,
		ShowTime:    show.ShowTime,
		Location:    show.Location,
		Email:       record.Email,
		Quantity:    record.SeatCount,
		Amount:      record.Amount,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		emailStatus = "skipped"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Payment details saved successfully",
		"id":           record.ID,
		"ticketsLeft":  left,
		"email_status": emailStatus,
	})
}

// TicketUpdate is POST /ticket_booking/update: a bare inventory decrement
// used by the dashboard when seats are sold outside the payment flow.
func (h *BookingHandler) TicketUpdate(c echo.Context) error {
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventId and ticketsBought required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	left, err := h.Shows.DecrementTickets(ctx, req.EventID, req.TicketsBought)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrShowNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		case errors.Is(err, repository.ErrInsufficientSeats):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "not enough tickets available"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "ticketsLeft": left})
}

// TicketsLeft is GET /ticket_booking?event_id=: the availability read used
// by the seat picker.  Pure read, fronted by the response cache.
func (h *BookingHandler) TicketsLeft(c echo.Context) error {
	id := c.QueryParam("event_id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	show, err := h.Shows.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ticketsLeft": show.TicketsLeft})
}
