package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-management/internal/model"
	"github.com/iliyamo/hotel-management/internal/repository"
)

// GuestHandler serves the guest directory endpoints.
type GuestHandler struct {
	Guests *repository.GuestRepo
}

// NewGuestHandler constructs a GuestHandler.
func NewGuestHandler(guests *repository.GuestRepo) *GuestHandler {
	if guests == nil {
		panic("nil repository passed to NewGuestHandler")
	}
	return &GuestHandler{Guests: guests}
}

type guestReq struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	IDProofType   string `json:"id_proof_type"`
	IDProofNumber string `json:"id_proof_number"`
}

func (r guestReq) toModel() model.Guest {
	return model.Guest{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		IDProofType:   r.IDProofType,
		IDProofNumber: r.IDProofNumber,
	}
}

// List handles GET /v1/guests.
func (h *GuestHandler) List(c echo.Context) error {
	guests, err := h.Guests.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list guests: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch guests"})
	}
	return c.JSON(http.StatusOK, guests)
}

// Get handles GET /v1/guests/:id.
func (h *GuestHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	guest, err := h.Guests.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		c.Logger().Errorf("get guest %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch guest"})
	}
	return c.JSON(http.StatusOK, guest)
}

// Search handles GET /v1/guests/search?query=.  The query parameter is
// required; matching is case-insensitive and unanchored across name,
// email and phone.
func (h *GuestHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query parameter is required"})
	}
	guests, err := h.Guests.Search(c.Request().Context(), query)
	if err != nil {
		c.Logger().Errorf("search guests: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to search guests"})
	}
	return c.JSON(http.StatusOK, guests)
}

// Create handles POST /v1/guests.
func (h *GuestHandler) Create(c echo.Context) error {
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	guest := req.toModel()
	if err := h.Guests.Create(c.Request().Context(), &guest); err != nil {
		c.Logger().Errorf("create guest: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create guest"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": guest.ID, "message": "guest created"})
}

// Update handles PUT /v1/guests/:id.
func (h *GuestHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Guests.Update(c.Request().Context(), id, req.toModel()); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		c.Logger().Errorf("update guest %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update guest"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "guest updated"})
}

// Delete handles DELETE /v1/guests/:id.
func (h *GuestHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	if err := h.Guests.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		c.Logger().Errorf("delete guest %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete guest"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "guest deleted"})
}
