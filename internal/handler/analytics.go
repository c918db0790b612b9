package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/repository"
)

// AnalyticsHandler serves the read-only dashboard endpoints.  Each one is a
// straight list over its table: 404 when the table is empty, 500 when the
// store fails.  All of these sit behind the response cache.
type AnalyticsHandler struct {
	Analytics *repository.AnalyticsRepo
	ShowRepo  *repository.ShowRepo
}

func NewAnalyticsHandler(a *repository.AnalyticsRepo, s *repository.ShowRepo) *AnalyticsHandler {
	return &AnalyticsHandler{Analytics: a, ShowRepo: s}
}

// Home is the GET / liveness message.
func (h *AnalyticsHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Hello World"})
}

// Earnings is GET /earning.
func (h *AnalyticsHandler) Earnings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Analytics.ListEarnings(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No earnings data found"})
	}
	return c.JSON(http.StatusOK, rows)
}

// TicketStats is GET /tickets-analytics.
func (h *AnalyticsHandler) TicketStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Analytics.ListTicketStats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No ticket data found"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Profit is GET /profit.
func (h *AnalyticsHandler) Profit(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Analytics.ListProfit(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No profit data found"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Shows is GET /shows.
func (h *AnalyticsHandler) Shows(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.ShowRepo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No shows found"})
	}
	return c.JSON(http.StatusOK, rows)
}
