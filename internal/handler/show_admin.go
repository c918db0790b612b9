package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/repository"
)

// ShowAdminHandler is the staff-only show management surface.  Routes are
// guarded by the JWT middleware; this is the only writer besides the booking
// decrement.
type ShowAdminHandler struct {
	Shows    *repository.ShowRepo
	validate *validator.Validate
}

func NewShowAdminHandler(shows *repository.ShowRepo) *ShowAdminHandler {
	return &ShowAdminHandler{Shows: shows, validate: validator.New()}
}

type showReq struct {
	ID          string `json:"id" validate:"required"`
	Image       string `json:"image"`
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required"`
	ShowTime    string `json:"time" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Price       string `json:"price" validate:"required"`
	UnitPrice   int64  `json:"unitPrice" validate:"required,gt=0"`
	TicketsLeft int64  `json:"ticketsLeft" validate:"gte=0"`
}

func (r showReq) toModel() *model.Show {
	return &model.Show{
		ID:          r.ID,
		Image:       r.Image,
		Title:       r.Title,
		Date:        r.Date,
		ShowTime:    r.ShowTime,
		Location:    r.Location,
		Price:       r.Price,
		UnitPrice:   r.UnitPrice,
		TicketsLeft: r.TicketsLeft,
	}
}

// Create is POST /v1/shows.
func (h *ShowAdminHandler) Create(c echo.Context) error {
	var req showReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show payload"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	show := req.toModel()
	if err := h.Shows.Create(ctx, show); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create show failed"})
	}
	return c.JSON(http.StatusCreated, show)
}

// Update is PUT /v1/shows/:id.  The path identifier wins over any id in the
// body.
func (h *ShowAdminHandler) Update(c echo.Context) error {
	var req showReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.ID = c.Param("id")
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show payload"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	show := req.toModel()
	if err := h.Shows.Update(ctx, show); err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update show failed"})
	}
	return c.JSON(http.StatusOK, show)
}
