package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-management/internal/model"
	"github.com/iliyamo/hotel-management/internal/repository"
)

// SettingsHandler serves the hotel configuration endpoints.  All reads
// return an empty object when the settings row has never been written
// so clients can fall back to their own defaults.
type SettingsHandler struct {
	Settings *repository.SettingsRepo
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(settings *repository.SettingsRepo) *SettingsHandler {
	if settings == nil {
		panic("nil repository passed to NewSettingsHandler")
	}
	return &SettingsHandler{Settings: settings}
}

type settingsReq struct {
	HotelName      string `json:"hotel_name" validate:"required"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email" validate:"omitempty,email"`
	CheckInTime    string `json:"check_in_time" validate:"required"`
	CheckOutTime   string `json:"check_out_time" validate:"required"`
	AutoLogout     bool   `json:"auto_logout"`
	SessionTimeout uint32 `json:"session_timeout" validate:"gte=1"`
	CompactView    bool   `json:"compact_view"`
	ShowStatistics bool   `json:"show_statistics"`
}

// Get handles GET /v1/settings.
func (h *SettingsHandler) Get(c echo.Context) error {
	s, ok, err := h.Settings.Get(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("get settings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch settings"})
	}
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{})
	}
	return c.JSON(http.StatusOK, s)
}

// Upsert handles POST /v1/settings.  The whole row is replaced; there
// is no partial patch on this resource.
func (h *SettingsHandler) Upsert(c echo.Context) error {
	var req settingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	s := model.Settings{
		HotelName:      req.HotelName,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		CheckInTime:    req.CheckInTime,
		CheckOutTime:   req.CheckOutTime,
		AutoLogout:     req.AutoLogout,
		SessionTimeout: req.SessionTimeout,
		CompactView:    req.CompactView,
		ShowStatistics: req.ShowStatistics,
	}
	if err := h.Settings.Upsert(c.Request().Context(), s); err != nil {
		c.Logger().Errorf("save settings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save settings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "settings saved"})
}

// GetNotifications handles GET /v1/settings/notifications.
func (h *SettingsHandler) GetNotifications(c echo.Context) error {
	n, ok, err := h.Settings.GetNotifications(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("get notification settings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch notification settings"})
	}
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{})
	}
	return c.JSON(http.StatusOK, n)
}

// UpsertNotifications handles POST /v1/settings/notifications.
func (h *SettingsHandler) UpsertNotifications(c echo.Context) error {
	var n model.NotificationSettings
	if err := c.Bind(&n); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Settings.UpsertNotifications(c.Request().Context(), n); err != nil {
		c.Logger().Errorf("save notification settings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save notification settings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "notification settings saved"})
}
